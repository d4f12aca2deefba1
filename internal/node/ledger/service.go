// Package ledger implements the record contract semantics on top of a
// records repository: create with an encryption proof, enumerate, and the
// first-wins decryption-verification step that permanently reveals a
// record's protected value.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/cryptox"
	"github.com/dmitrijs2005/locshare/internal/logging"
	"github.com/dmitrijs2005/locshare/internal/node/models"
	"github.com/dmitrijs2005/locshare/internal/node/repositories/records"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locshare_records_created_total",
		Help: "Number of records written to the ledger.",
	})
	recordsVerifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locshare_records_verified_total",
		Help: "Number of records whose protected value was verified and revealed.",
	})
)

// nowFn is a seam for tests.
var nowFn = time.Now

// Publisher receives record events as transactions confirm. The HTTP layer
// plugs its websocket hub in here.
type Publisher interface {
	Publish(event api.Event)
}

// Service applies ledger writes and answers reads. Writes return a
// transaction handle that confirms once the write is applied; confirmation
// is tracked per transaction so clients can poll for block inclusion.
type Service struct {
	repo         records.Repository
	relayerKey   []byte
	contractAddr string
	log          logging.Logger
	publisher    Publisher

	mu     sync.Mutex
	height int64
	txs    map[string]api.TxStatus
}

// NewService constructs the ledger service.
func NewService(repo records.Repository, relayerKey []byte, contractAddr string, log logging.Logger) *Service {
	return &Service{
		repo:         repo,
		relayerKey:   relayerKey,
		contractAddr: contractAddr,
		log:          log,
		txs:          make(map[string]api.TxStatus),
	}
}

// SetPublisher attaches an event publisher. Must be called before serving.
func (s *Service) SetPublisher(p Publisher) {
	s.publisher = p
}

// ContractAddress reports the address encryption must be bound to.
func (s *Service) ContractAddress() string {
	return s.contractAddr
}

// CreateRecord validates the encryption proof and stores a new record.
// The record starts unverified; createdAt is assigned at write time.
func (s *Service) CreateRecord(ctx context.Context, creator string, req *api.CreateRecordRequest) (*api.TxStatus, error) {
	if req.ID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: id and name are required", common.ErrValidation)
	}
	if req.Radius < 0 {
		return nil, fmt.Errorf("%w: radius must be non-negative", common.ErrValidation)
	}
	if len(req.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty ciphertext payload", common.ErrValidation)
	}

	want := cryptox.EncryptionProof(s.relayerKey, s.contractAddr, creator, req.Payload)
	if !cryptox.VerifyProof(want, req.Proof) {
		return nil, common.ErrInvalidProof
	}

	record := &models.Record{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Creator:     creator,
		CreatedAt:   nowFn().Unix(),
		Radius:      req.Radius,
		Payload:     req.Payload,
		PublicCoord: req.PublicCoord,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}

	tx := s.confirmTx()
	recordsCreatedTotal.Inc()
	s.publish(api.Event{Type: api.EventRecordCreated, RecordID: record.ID, Height: tx.Height})
	s.log.Info(ctx, "record created", "id", record.ID, "creator", creator, "height", tx.Height)
	return tx, nil
}

// VerifyRecord checks a decryption proof against the record's ciphertext
// handle and, on success, atomically marks the record verified and stores
// the revealed value. A record can be verified at most once; later attempts
// fail with ErrAlreadyVerified.
func (s *Service) VerifyRecord(ctx context.Context, id string, req *api.VerifyRequest) (*api.TxStatus, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Verified {
		return nil, common.ErrAlreadyVerified
	}

	handle := cryptox.EncodeHandle(record.Payload)

	want := cryptox.DecryptionProof(s.relayerKey, handle, req.EncodedClearValues)
	if !cryptox.VerifyProof(want, req.Proof) {
		return nil, common.ErrInvalidProof
	}

	values, err := cryptox.DecodeClearValues(req.EncodedClearValues)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	value, ok := values[handle]
	if !ok {
		return nil, fmt.Errorf("%w: no clear value for record handle", common.ErrValidation)
	}

	// MarkVerified is first-wins; a concurrent verifier surfaces here as
	// ErrAlreadyVerified.
	if err := s.repo.MarkVerified(ctx, id, value); err != nil {
		return nil, err
	}

	tx := s.confirmTx()
	recordsVerifiedTotal.Inc()
	s.publish(api.Event{Type: api.EventRecordVerified, RecordID: id, Height: tx.Height})
	s.log.Info(ctx, "record verified", "id", id, "height", tx.Height)
	return tx, nil
}

// GetRecord returns the public view of a record.
func (s *Service) GetRecord(ctx context.Context, id string) (*api.RecordData, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecordData(record), nil
}

// ListRecordIDs enumerates all record identifiers in creation order.
func (s *Service) ListRecordIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListIDs(ctx)
}

// GetHandle returns the opaque ciphertext handle for a record's protected
// field.
func (s *Service) GetHandle(ctx context.Context, id string) (string, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return cryptox.EncodeHandle(record.Payload), nil
}

// TxStatus reports the state of a submitted transaction.
func (s *Service) TxStatus(txID string) (*api.TxStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[txID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &tx, nil
}

// Snapshot returns all stored records, for backup export.
func (s *Service) Snapshot(ctx context.Context) ([]*models.Record, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) confirmTx() *api.TxStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height++
	tx := api.TxStatus{ID: uuid.NewString(), Status: api.TxConfirmed, Height: s.height}
	s.txs[tx.ID] = tx
	return &tx
}

func (s *Service) publish(event api.Event) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

func toRecordData(record *models.Record) *api.RecordData {
	return &api.RecordData{
		ID:            record.ID,
		Name:          record.Name,
		Description:   record.Description,
		Creator:       record.Creator,
		CreatedAt:     record.CreatedAt,
		Radius:        record.Radius,
		Verified:      record.Verified,
		RevealedValue: record.RevealedValue,
		PublicCoord:   record.PublicCoord,
	}
}
