package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_RequiresWallet(t *testing.T) {
	f := newFixture(t)
	f.w.Disconnect()

	err := f.c.Initialize(context.Background())
	assert.ErrorIs(t, err, common.ErrNotConnected)
	assert.False(t, f.c.Ready())
	assert.Equal(t, int32(0), f.cap.initCalls.Load())
}

func TestInitialize_BringsUpOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.c.Initialize(ctx))
	require.NoError(t, f.c.Initialize(ctx))

	assert.True(t, f.c.Ready())
	assert.Equal(t, int32(1), f.cap.initCalls.Load())
	assert.Equal(t, int32(1), f.l.sessionCalls.Load())
	assert.Equal(t, "0xcontract", f.c.ContractAddress())
}

func TestInitialize_ConcurrentCallsShareOneBringUp(t *testing.T) {
	f := newFixture(t)
	f.cap.initGate = make(chan struct{})

	var wg sync.WaitGroup
	for n := 0; n < 5; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.c.Initialize(context.Background())
		}()
	}

	close(f.cap.initGate)
	wg.Wait()

	assert.Equal(t, int32(1), f.cap.initCalls.Load())
	assert.True(t, f.c.Ready())
}

func TestInitialize_FailureCollapsesAndRetries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	boom := errors.New("sdk unavailable")
	f.cap.initErr = boom

	err := f.c.Initialize(ctx)
	require.ErrorIs(t, err, boom)
	assert.False(t, f.c.Ready())

	cur, ok := f.c.Notifier().Current()
	require.True(t, ok)
	assert.Equal(t, StatusError, cur.Status)

	// Failure collapsed back to uninitialized; a later call retries and
	// succeeds.
	f.cap.initErr = nil
	require.NoError(t, f.c.Initialize(ctx))
	assert.True(t, f.c.Ready())
	assert.Equal(t, int32(2), f.cap.initCalls.Load())
}

func TestInitialize_ContractDiscoveryFailure(t *testing.T) {
	f := newFixture(t)
	f.l.contractErr = errors.New("node down")

	err := f.c.Initialize(context.Background())
	require.Error(t, err)
	assert.False(t, f.c.Ready())
	// The capability is never touched when discovery fails.
	assert.Equal(t, int32(0), f.cap.initCalls.Load())
}

func TestPipelinesRefuseToRunBeforeReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.c.Create(ctx, CreateInput{Name: "Home", Latitude: 1, Longitude: 1})
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	_, err = f.c.Decrypt(ctx, "location-1")
	assert.ErrorIs(t, err, common.ErrNotInitialized)
}
