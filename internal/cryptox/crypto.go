// Package cryptox implements the primitives behind the encrypted-coordinate
// capability: AES-GCM sealing of fixed-point values, argon2 key derivation,
// ciphertext handle encoding, and the HMAC proof bindings checked by the
// ledger node. Everything outside this package treats payloads, handles, and
// proofs as opaque bytes.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

// DeriveKey derives a 32-byte sealing key from a passphrase and salt using
// argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// SealInt encrypts a fixed-point coordinate value using AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new random
// 12-byte nonce is generated for each call and prepended to the ciphertext,
// so the returned payload is self-contained: nonce || ciphertext.
func SealInt(value int64, key []byte) ([]byte, error) {
	plaintext := make([]byte, 8)
	binary.BigEndian.PutUint64(plaintext, uint64(value))

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return append(nonce, aesgcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// OpenInt decrypts a payload produced by SealInt with the same key.
func OpenInt(payload, key []byte) (int64, error) {
	if len(payload) < nonceSize {
		return 0, fmt.Errorf("payload too short: %d bytes", len(payload))
	}
	nonce, ciphertext := payload[:nonceSize], payload[nonceSize:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return 0, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return 0, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return 0, err
	}
	if len(plaintext) != 8 {
		return 0, fmt.Errorf("unexpected plaintext length: %d", len(plaintext))
	}
	return int64(binary.BigEndian.Uint64(plaintext)), nil
}

// EncodeHandle turns a ciphertext payload into its opaque string handle, the
// form in which encrypted values circulate between ledger and capability.
func EncodeHandle(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}

// DecodeHandle recovers the ciphertext payload behind a handle.
func DecodeHandle(handle string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(handle)
}

// EncodeClearValues serializes decrypted values keyed by their ciphertext
// handle into the encoded form carried alongside a decryption proof.
func EncodeClearValues(values map[string]int64) ([]byte, error) {
	return json.Marshal(values)
}

// DecodeClearValues parses the encoded clear-value set submitted with a
// verification transaction.
func DecodeClearValues(encoded []byte) (map[string]int64, error) {
	var values map[string]int64
	if err := json.Unmarshal(encoded, &values); err != nil {
		return nil, fmt.Errorf("decoding clear values: %w", err)
	}
	return values, nil
}
