package coordinator

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/client/fhe"
	"github.com/dmitrijs2005/locshare/internal/client/wallet"
	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/cryptox"
	"github.com/dmitrijs2005/locshare/internal/logging"
	"github.com/stretchr/testify/require"
)

const testAccount = "0xme"

// fakeLedger mimics the node's contract semantics in memory: duplicate IDs
// are rejected, verification is first-wins, and clear values travel encoded
// the same way the real capability encodes them.
type fakeLedger struct {
	mu      sync.Mutex
	records map[string]*api.RecordData
	handles map[string]string
	order   []string

	listErr      error
	getErr       map[string]error
	submitErr    error
	contractErr  error
	sessionErr   error
	verifiedLate bool

	txSeq        atomic.Int64
	verifyOKs    atomic.Int32
	listCalls    atomic.Int32
	sessionCalls atomic.Int32
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		records: make(map[string]*api.RecordData),
		handles: make(map[string]string),
		getErr:  make(map[string]error),
	}
}

func (f *fakeLedger) Close() error { return nil }

func (f *fakeLedger) ContractAddress(ctx context.Context) (string, error) {
	if f.contractErr != nil {
		return "", f.contractErr
	}
	return "0xcontract", nil
}

func (f *fakeLedger) OpenSession(ctx context.Context, account string) error {
	f.sessionCalls.Add(1)
	return f.sessionErr
}

func (f *fakeLedger) ListRecordIDs(ctx context.Context) ([]string, error) {
	f.listCalls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.order))
	copy(ids, f.order)
	return ids, nil
}

func (f *fakeLedger) GetRecord(ctx context.Context, id string) (*api.RecordData, error) {
	if err := f.getErr[id]; err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeLedger) GetCiphertextHandle(ctx context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.handles[id]
	if !ok {
		return "", common.ErrNotFound
	}
	return h, nil
}

func (f *fakeLedger) CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.records[req.ID]; exists {
		return "", common.ErrValidation
	}
	f.records[req.ID] = &api.RecordData{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Creator:     testAccount,
		CreatedAt:   time.Now().Unix(),
		Radius:      req.Radius,
		PublicCoord: req.PublicCoord,
	}
	f.handles[req.ID] = cryptox.EncodeHandle(req.Payload)
	f.order = append(f.order, req.ID)
	return fmt.Sprintf("tx-%d", f.txSeq.Add(1)), nil
}

func (f *fakeLedger) SubmitVerification(ctx context.Context, id string, req *api.VerifyRequest) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok {
		return "", common.ErrNotFound
	}
	if rec.Verified || f.verifiedLate {
		return "", fmt.Errorf("%w: record %s", common.ErrAlreadyVerified, id)
	}

	values, err := cryptox.DecodeClearValues(req.EncodedClearValues)
	if err != nil {
		return "", err
	}
	value, ok := values[f.handles[id]]
	if !ok {
		return "", common.ErrInvalidProof
	}

	rec.Verified = true
	rec.RevealedValue = value
	f.verifyOKs.Add(1)
	return fmt.Sprintf("tx-%d", f.txSeq.Add(1)), nil
}

func (f *fakeLedger) AwaitConfirmation(ctx context.Context, txID string) error { return nil }

// fakeCapability is a transparent stand-in for the encryption subsystem:
// payloads are just big-endian integers, so tests can reason about round
// trips without key material.
type fakeCapability struct {
	ready        atomic.Bool
	initErr      error
	encryptErr   error
	initCalls    atomic.Int32
	decryptCalls atomic.Int32
	initGate     chan struct{} // if non-nil, Initialize blocks until closed
}

func (f *fakeCapability) Initialize(ctx context.Context) error {
	f.initCalls.Add(1)
	if f.initGate != nil {
		<-f.initGate
	}
	if f.initErr != nil {
		return f.initErr
	}
	f.ready.Store(true)
	return nil
}

func (f *fakeCapability) Ready() bool { return f.ready.Load() }

func (f *fakeCapability) EncryptInt64(value int64, contractAddr, account string) ([]byte, []byte, error) {
	if f.encryptErr != nil {
		return nil, nil, f.encryptErr
	}
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, uint64(value))
	return payload, []byte("enc-proof"), nil
}

func (f *fakeCapability) RequestDecryption(ctx context.Context, handle string, onProofReady fhe.ProofReadyFunc) (*fhe.DecryptResult, error) {
	f.decryptCalls.Add(1)

	payload, err := cryptox.DecodeHandle(handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}
	value := int64(binary.BigEndian.Uint64(payload))

	clearValues := map[string]int64{handle: value}
	encoded, err := cryptox.EncodeClearValues(clearValues)
	if err != nil {
		return nil, err
	}

	if err := onProofReady(ctx, encoded, []byte("dec-proof")); err != nil {
		return nil, err
	}
	return &fhe.DecryptResult{ClearValues: clearValues}, nil
}

type fixture struct {
	c   *Coordinator
	l   *fakeLedger
	cap *fakeCapability
	w   *wallet.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l := newFakeLedger()
	capability := &fakeCapability{}
	w := wallet.NewSession(nil)
	require.NoError(t, w.Connect(testAccount))

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	c := New(l, w, capability, log)

	return &fixture{c: c, l: l, cap: capability, w: w}
}

// newReadyFixture returns a fixture with initialization already complete.
func newReadyFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.c.Initialize(context.Background()))
	require.True(t, f.c.Ready())
	return f
}
