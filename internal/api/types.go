// Package api defines the JSON wire types exchanged between the LocShare
// client and the ledger node. Coordinate fields are fixed-point integers
// (value * 1e6); ciphertext payloads and proofs are base64 via encoding/json.
package api

// RecordData is the public view of a published record.
//
// RevealedValue holds the fixed-point protected coordinate once the record is
// verified, zero before that. PublicCoord is the cleartext coordinate stored
// alongside the ciphertext from the start.
type RecordData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Creator       string `json:"creator"`
	CreatedAt     int64  `json:"created_at"`
	Radius        int64  `json:"radius"`
	Verified      bool   `json:"verified"`
	RevealedValue int64  `json:"revealed_value"`
	PublicCoord   int64  `json:"public_coord"`
}

// CreateRecordRequest carries a new record write.
type CreateRecordRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Payload     []byte `json:"payload"`
	Proof       []byte `json:"proof"`
	PublicCoord int64  `json:"public_coord"`
	Radius      int64  `json:"radius"`
	Description string `json:"description"`
}

// VerifyRequest submits a decryption proof for a record.
type VerifyRequest struct {
	EncodedClearValues []byte `json:"encoded_clear_values"`
	Proof              []byte `json:"proof"`
}

// Transaction statuses reported by the node.
const (
	TxPending   = "pending"
	TxConfirmed = "confirmed"
)

// TxStatus describes a submitted ledger transaction.
type TxStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Height int64  `json:"height,omitempty"`
}

// TxResponse is returned by write endpoints.
type TxResponse struct {
	Tx TxStatus `json:"tx"`
}

// HandleResponse returns the opaque ciphertext handle of a record's
// protected field.
type HandleResponse struct {
	Handle string `json:"handle"`
}

// ContractResponse reports the node's contract address.
type ContractResponse struct {
	Address string `json:"address"`
}

// SessionRequest opens a wallet session for an account.
type SessionRequest struct {
	Account string `json:"account"`
}

// SessionResponse carries the bearer token for subsequent writes.
type SessionResponse struct {
	Token string `json:"token"`
}

// Event types published on the websocket feed.
const (
	EventRecordCreated  = "record_created"
	EventRecordVerified = "record_verified"
)

// Event is one entry of the node's record event feed.
type Event struct {
	Type     string `json:"type"`
	RecordID string `json:"record_id"`
	Height   int64  `json:"height"`
}

// Error is the JSON error body returned by the node API.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes used by the node API.
const (
	CodeAlreadyVerified = "already_verified"
	CodeInvalidProof    = "invalid_proof"
	CodeNotFound        = "not_found"
	CodeValidation      = "validation"
	CodeUnauthorized    = "unauthorized"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal"
)
