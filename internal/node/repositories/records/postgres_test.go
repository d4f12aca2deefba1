package records

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/stretchr/testify/require"
)

func TestPostgres_Insert_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	record := sampleRecord("r1", 10)

	mock.ExpectExec("INSERT INTO records").
		WithArgs(record.ID, record.Name, record.Description, record.Creator,
			record.CreatedAt, record.Radius, record.Payload, record.PublicCoord).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Insert(context.Background(), record))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_DuplicateID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO records").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	err = repo.Insert(context.Background(), sampleRecord("r1", 10))
	require.True(t, errors.Is(err, common.ErrValidation))
}

func TestPostgres_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "name", "description", "creator", "created_at",
		"radius", "payload", "public_coord", "verified", "revealed_value"}
	mock.ExpectQuery("SELECT (.+) FROM records WHERE id").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("r1", "Home", "front door", "0xAlice", int64(10),
				int64(100), []byte{1, 2, 3}, int64(-118243683), false, int64(0)))

	repo := NewPostgresRepository(db)
	got, err := repo.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "0xAlice", got.Creator)
	require.Equal(t, int64(-118243683), got.PublicCoord)
}

func TestPostgres_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "name", "description", "creator", "created_at",
		"radius", "payload", "public_coord", "verified", "revealed_value"}
	mock.ExpectQuery("SELECT (.+) FROM records WHERE id").
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows(cols))

	repo := NewPostgresRepository(db)
	_, err = repo.GetByID(context.Background(), "absent")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestPostgres_ListIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM records ORDER BY created_at").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	repo := NewPostgresRepository(db)
	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids)
}

func TestPostgres_MarkVerified_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE records SET verified = true").
		WithArgs("r1", int64(34052235)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.MarkVerified(context.Background(), "r1", 34052235))
}

func TestPostgres_MarkVerified_AlreadyVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE records SET verified = true").
		WithArgs("r1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT verified FROM records").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"verified"}).AddRow(true))
	mock.ExpectRollback()

	repo := NewPostgresRepository(db)
	err = repo.MarkVerified(context.Background(), "r1", 1)
	require.True(t, errors.Is(err, common.ErrAlreadyVerified))
}

func TestPostgres_MarkVerified_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE records SET verified = true").
		WithArgs("absent", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT verified FROM records").
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"verified"}))
	mock.ExpectRollback()

	repo := NewPostgresRepository(db)
	err = repo.MarkVerified(context.Background(), "absent", 1)
	require.True(t, errors.Is(err, common.ErrNotFound))
}
