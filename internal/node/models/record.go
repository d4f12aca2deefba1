// Package models defines node-side storage models.
package models

// Record is a stored ledger record. Payload is the ciphertext of the
// protected coordinate; RevealedValue is only meaningful once Verified is
// true, and the two are always written together.
type Record struct {
	ID            string
	Name          string
	Description   string
	Creator       string
	CreatedAt     int64
	Radius        int64
	Payload       []byte
	PublicCoord   int64
	Verified      bool
	RevealedValue int64
}
