package fhe

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/cryptox"
)

// networkSalt is a fixed network parameter so every client with the same
// passphrase derives the same sealing key.
var networkSalt = []byte("locshare-net-v1")

// LocalEngine is a Capability backed by local symmetric crypto. Payloads are
// AES-GCM sealed fixed-point integers; proofs are HMAC bindings computed with
// a relayer key shared with the node.
type LocalEngine struct {
	mu         sync.Mutex
	passphrase []byte
	relayerKey []byte
	key        []byte
}

func NewLocalEngine(passphrase, relayerKey []byte) *LocalEngine {
	return &LocalEngine{passphrase: passphrase, relayerKey: relayerKey}
}

// Initialize derives the sealing key. The key derivation is deliberately
// expensive; callers should run it once and reuse the engine. The passphrase
// is wiped after use.
func (e *LocalEngine) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.key != nil {
		return nil
	}
	if len(e.passphrase) == 0 {
		return fmt.Errorf("%w: empty passphrase", common.ErrValidation)
	}

	e.key = cryptox.DeriveKey(e.passphrase, networkSalt)
	common.WipeByteArray(e.passphrase)
	e.passphrase = nil
	return nil
}

// SetPassphrase replaces the passphrase used for key derivation. It has no
// effect once the key has been derived.
func (e *LocalEngine) SetPassphrase(passphrase []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.key != nil {
		return
	}
	e.passphrase = passphrase
}

func (e *LocalEngine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.key != nil
}

func (e *LocalEngine) sealingKey() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.key == nil {
		return nil, common.ErrNotInitialized
	}
	return e.key, nil
}

// EncryptInt64 seals value and binds the resulting payload to the contract
// address and submitting account.
func (e *LocalEngine) EncryptInt64(value int64, contractAddr, account string) ([]byte, []byte, error) {
	key, err := e.sealingKey()
	if err != nil {
		return nil, nil, err
	}

	payload, err := cryptox.SealInt(value, key)
	if err != nil {
		return nil, nil, err
	}

	proof := cryptox.EncryptionProof(e.relayerKey, contractAddr, account, payload)
	return payload, proof, nil
}

// RequestDecryption opens the handle's payload, prepares a decryption proof
// and invokes onProofReady exactly once to perform the verification write.
// The clear values are only returned after that write succeeds.
func (e *LocalEngine) RequestDecryption(ctx context.Context, handle string, onProofReady ProofReadyFunc) (*DecryptResult, error) {
	key, err := e.sealingKey()
	if err != nil {
		return nil, err
	}

	payload, err := cryptox.DecodeHandle(handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}

	value, err := cryptox.OpenInt(payload, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}

	clearValues := map[string]int64{handle: value}
	encoded, err := cryptox.EncodeClearValues(clearValues)
	if err != nil {
		return nil, err
	}

	proof := cryptox.DecryptionProof(e.relayerKey, handle, encoded)

	if err := onProofReady(ctx, encoded, proof); err != nil {
		return nil, err
	}

	return &DecryptResult{ClearValues: clearValues}, nil
}
