package records

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/node/models"
	"github.com/stretchr/testify/require"
)

func sampleRecord(id string, createdAt int64) *models.Record {
	return &models.Record{
		ID:          id,
		Name:        "Home",
		Description: "front door",
		Creator:     "0xAlice",
		CreatedAt:   createdAt,
		Radius:      100,
		Payload:     []byte{1, 2, 3},
		PublicCoord: -118243683,
	}
}

func TestInMemory_InsertAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("r1", 10)))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Home", got.Name)
	require.False(t, got.Verified)

	_, err = repo.GetByID(ctx, "absent")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestInMemory_InsertDuplicate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("r1", 10)))
	err := repo.Insert(ctx, sampleRecord("r1", 11))
	require.True(t, errors.Is(err, common.ErrValidation))
}

func TestInMemory_ListIDs_CreationOrder(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("b", 20)))
	require.NoError(t, repo.Insert(ctx, sampleRecord("a", 10)))
	require.NoError(t, repo.Insert(ctx, sampleRecord("c", 20)))

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestInMemory_MarkVerified_FirstWins(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("r1", 10)))

	require.NoError(t, repo.MarkVerified(ctx, "r1", 34052235))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	require.True(t, got.Verified)
	require.Equal(t, int64(34052235), got.RevealedValue)

	err = repo.MarkVerified(ctx, "r1", 99)
	require.True(t, errors.Is(err, common.ErrAlreadyVerified))

	// Value from the losing attempt must not leak in.
	got, err = repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, int64(34052235), got.RevealedValue)

	err = repo.MarkVerified(ctx, "absent", 1)
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestInMemory_GetReturnsCopy(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("r1", 10)))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Home", again.Name)
}
