package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Proof bindings are HMAC-SHA256 tags keyed with the relayer key shared
// between the encryption capability and the ledger node. A zero byte
// separates the bound fields so concatenation is unambiguous.

// EncryptionProof binds a ciphertext payload to the contract address and the
// submitting account. The node recomputes it before accepting a record.
func EncryptionProof(relayerKey []byte, contractAddr, account string, payload []byte) []byte {
	mac := hmac.New(sha256.New, relayerKey)
	mac.Write([]byte(contractAddr))
	mac.Write([]byte{0})
	mac.Write([]byte(account))
	mac.Write([]byte{0})
	mac.Write(payload)
	return mac.Sum(nil)
}

// DecryptionProof binds an encoded clear-value set to the ciphertext handle
// it was decrypted from. The node recomputes it before marking the record
// verified.
func DecryptionProof(relayerKey []byte, handle string, encodedClearValues []byte) []byte {
	mac := hmac.New(sha256.New, relayerKey)
	mac.Write([]byte(handle))
	mac.Write([]byte{0})
	mac.Write(encodedClearValues)
	return mac.Sum(nil)
}

// VerifyProof compares two proofs in constant time.
func VerifyProof(want, got []byte) bool {
	return hmac.Equal(want, got)
}
