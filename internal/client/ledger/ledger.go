// Package ledger provides the client-side gateway to the record ledger.
// The coordinator depends only on the Ledger interface; the HTTP
// implementation talks to a node's JSON API.
package ledger

import (
	"context"

	"github.com/dmitrijs2005/locshare/internal/api"
)

type Ledger interface {
	Close() error
	ContractAddress(ctx context.Context) (string, error)
	OpenSession(ctx context.Context, account string) error
	ListRecordIDs(ctx context.Context) ([]string, error)
	GetRecord(ctx context.Context, id string) (*api.RecordData, error)
	GetCiphertextHandle(ctx context.Context, id string) (string, error)
	CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (string, error)
	SubmitVerification(ctx context.Context, id string, req *api.VerifyRequest) (string, error)
	AwaitConfirmation(ctx context.Context, txID string) error
}
