// Package fhe defines the encryption capability the coordinator depends on.
// The coordinator never inspects payloads, handles, or proofs; it moves them
// between the capability and the ledger as opaque values.
package fhe

import "context"

// DecryptResult carries decrypted clear values keyed by ciphertext handle.
type DecryptResult struct {
	ClearValues map[string]int64
}

// ProofReadyFunc performs the on-ledger verification write once the
// capability has prepared a decryption proof. The capability invokes it at
// most once per request.
type ProofReadyFunc func(ctx context.Context, encodedClearValues []byte, proof []byte) error

// Encryptor produces a ciphertext payload for a protected value, bound to
// the contract and the submitting account.
type Encryptor interface {
	EncryptInt64(value int64, contractAddr, account string) (payload []byte, proof []byte, err error)
}

// DecryptionRequester resolves a ciphertext handle to clear values. The
// onProofReady callback runs the verification write before the result is
// returned; if it fails, the request fails.
type DecryptionRequester interface {
	RequestDecryption(ctx context.Context, handle string, onProofReady ProofReadyFunc) (*DecryptResult, error)
}

// Capability is the full encryption subsystem surface.
type Capability interface {
	Initialize(ctx context.Context) error
	Ready() bool
	Encryptor
	DecryptionRequester
}
