package coordinator

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/locshare/internal/common"
)

// Initialize brings up the encryption subsystem: it discovers the contract
// address, opens a ledger session for the connected account and initializes
// the encryption capability. It requires an active wallet session.
//
// Initialize is idempotent. A call that finds bring-up already running or
// already complete returns immediately without starting a second one; a
// failed bring-up collapses back to uninitialized so a later call can retry.
func (c *Coordinator) Initialize(ctx context.Context) error {
	account, err := c.wallet.Account()
	if err != nil {
		c.notifier.Error("Wallet not connected")
		return err
	}

	if !c.initState.CompareAndSwap(stateUninitialized, stateInitializing) {
		// Already ready, or another call holds the guard.
		return nil
	}

	if err := c.bringUp(ctx, account); err != nil {
		c.initState.Store(stateUninitialized)
		c.notifier.Error("Initialization failed: " + err.Error())
		return err
	}

	c.initState.Store(stateReady)
	c.notifier.Success("Encryption ready")
	return nil
}

func (c *Coordinator) bringUp(ctx context.Context, account string) error {
	addr, err := c.ledger.ContractAddress(ctx)
	if err != nil {
		return fmt.Errorf("contract discovery: %w", err)
	}

	if err := c.ledger.OpenSession(ctx, account); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if err := c.fhe.Initialize(ctx); err != nil {
		return fmt.Errorf("encryption subsystem: %w", err)
	}

	c.contractAddr = addr
	return nil
}

// ensureReady gates the creation and decryption pipelines.
func (c *Coordinator) ensureReady() error {
	if !c.wallet.Connected() {
		return common.ErrNotConnected
	}
	if c.initState.Load() != stateReady {
		return common.ErrNotInitialized
	}
	return nil
}
