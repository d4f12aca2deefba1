package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/dbx"
	"github.com/dmitrijs2005/locshare/internal/node/models"
)

// PostgresRepository implements record storage over PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to the given database.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new record. Duplicate IDs are rejected with ErrValidation
// so a replayed create transaction cannot overwrite an existing record.
func (r *PostgresRepository) Insert(ctx context.Context, record *models.Record) error {
	query := `
		INSERT INTO records (id, name, description, creator, created_at, radius, payload, public_coord, verified, revealed_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, 0)
		ON CONFLICT (id) DO NOTHING;
	`
	res, err := r.db.ExecContext(ctx, query,
		record.ID, record.Name, record.Description, record.Creator,
		record.CreatedAt, record.Radius, record.Payload, record.PublicCoord)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: duplicate record id %s", common.ErrValidation, record.ID)
	}
	return nil
}

// GetByID returns a single record or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	query := `
		SELECT id, name, description, creator, created_at, radius, payload, public_coord, verified, revealed_value
		FROM records WHERE id = $1;
	`
	var item models.Record
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Creator, &item.CreatedAt,
		&item.Radius, &item.Payload, &item.PublicCoord, &item.Verified, &item.RevealedValue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select record: %w", err)
	}
	return &item, nil
}

// ListIDs enumerates all record identifiers in creation order.
func (r *PostgresRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM records ORDER BY created_at, id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to select record ids: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAll returns every stored record in creation order.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Record, error) {
	query := `
		SELECT id, name, description, creator, created_at, radius, payload, public_coord, verified, revealed_value
		FROM records ORDER BY created_at, id;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		var item models.Record
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Creator, &item.CreatedAt,
			&item.Radius, &item.Payload, &item.PublicCoord, &item.Verified, &item.RevealedValue,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkVerified flips the verified flag and stores the revealed value. The
// WHERE guard makes verification first-wins: a second attempt matches no rows
// and is reported as ErrAlreadyVerified. Update and disambiguation run in one
// transaction so they observe the same state.
func (r *PostgresRepository) MarkVerified(ctx context.Context, id string, revealedValue int64) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `
			UPDATE records SET verified = true, revealed_value = $2
			WHERE id = $1 AND verified = false;
		`
		res, err := tx.ExecContext(ctx, query, id, revealedValue)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected error: %w", err)
		}
		if n == 1 {
			return nil
		}

		// Distinguish "already verified" from "no such record".
		var verified bool
		err = tx.QueryRowContext(ctx, `SELECT verified FROM records WHERE id = $1;`, id).Scan(&verified)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if verified {
			return common.ErrAlreadyVerified
		}
		return fmt.Errorf("unexpected rows affected: %d", n)
	})
}
