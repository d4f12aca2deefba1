// Package coordinator implements the encrypted record lifecycle: one-time
// bring-up of the encryption subsystem, directory synchronization from the
// ledger, the creation pipeline and the per-record decryption-verification
// protocol. All mutable view state lives inside the Coordinator and is only
// changed by its methods; the directory snapshot is replaced wholesale, never
// patched in place.
package coordinator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/locshare/internal/client/fhe"
	"github.com/dmitrijs2005/locshare/internal/client/ledger"
	"github.com/dmitrijs2005/locshare/internal/client/wallet"
	"github.com/dmitrijs2005/locshare/internal/logging"
	"github.com/google/uuid"
)

// Initialization states.
const (
	stateUninitialized int32 = iota
	stateInitializing
	stateReady
)

// Record is the client-side view of a published record. Longitude is public
// from creation; Latitude is only present once the record has been verified
// (or transiently, for the requester, right after a decryption round).
type Record struct {
	ID          string
	Name        string
	Description string
	Creator     string
	CreatedAt   int64
	Radius      int64
	Verified    bool
	Longitude   float64
	Latitude    float64
}

// Coordinator drives the record lifecycle against a ledger, a wallet session
// and the encryption capability.
type Coordinator struct {
	ledger   ledger.Ledger
	wallet   *wallet.Session
	fhe      fhe.Capability
	log      logging.Logger
	notifier *Notifier

	initState    atomic.Int32
	contractAddr string

	mu         sync.Mutex
	snapshot   *Snapshot
	creating   bool
	decrypting map[string]bool

	// Test seams.
	nowFn    func() time.Time
	idSuffix func() string
}

func New(l ledger.Ledger, w *wallet.Session, capability fhe.Capability, log logging.Logger) *Coordinator {
	return &Coordinator{
		ledger:     l,
		wallet:     w,
		fhe:        capability,
		log:        log,
		notifier:   NewNotifier(),
		snapshot:   &Snapshot{},
		decrypting: make(map[string]bool),
		nowFn:      time.Now,
		idSuffix:   func() string { return uuid.NewString()[:8] },
	}
}

// Notifier exposes the status slot for the presentation layer.
func (c *Coordinator) Notifier() *Notifier {
	return c.notifier
}

// Ready reports whether the encryption subsystem has been brought up.
func (c *Coordinator) Ready() bool {
	return c.initState.Load() == stateReady
}

// ContractAddress returns the contract the coordinator binds encryption to.
// Empty until initialization succeeds.
func (c *Coordinator) ContractAddress() string {
	return c.contractAddr
}

// DecryptInFlight reports whether a decryption round for the record is
// currently running. This is an advisory signal for UI affordances, not a
// lock: concurrent rounds are tolerated and converge.
func (c *Coordinator) DecryptInFlight(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decrypting[id]
}
