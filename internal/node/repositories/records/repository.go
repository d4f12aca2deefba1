// Package records provides persistence for ledger records.
package records

import (
	"context"

	"github.com/dmitrijs2005/locshare/internal/node/models"
)

// Repository is the storage contract for records.
//
// MarkVerified must be atomic: the verified flag and the revealed value are
// set together or not at all. It returns common.ErrAlreadyVerified when the
// record is already verified and common.ErrNotFound when it does not exist.
type Repository interface {
	Insert(ctx context.Context, record *models.Record) error
	GetByID(ctx context.Context, id string) (*models.Record, error)
	ListIDs(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context) ([]*models.Record, error)
	MarkVerified(ctx context.Context, id string, revealedValue int64) error
}
