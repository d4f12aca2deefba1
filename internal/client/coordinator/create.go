package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/common"
	"github.com/dmitrijs2005/locshare/internal/fixedpoint"
)

// CreateInput is the user input for a new record.
type CreateInput struct {
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	Radius      int64
}

func (in *CreateInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if err := fixedpoint.ValidateLatitude(in.Latitude); err != nil {
		return err
	}
	if err := fixedpoint.ValidateLongitude(in.Longitude); err != nil {
		return err
	}
	if in.Radius < 0 {
		return fmt.Errorf("%w: radius must be non-negative", common.ErrValidation)
	}
	return nil
}

// Create validates the input, encrypts the protected coordinate bound to the
// contract and the caller's account, writes the record to the ledger and
// waits for confirmation. The directory is refreshed after a confirmed write;
// until that refresh completes the new record is not assumed present in the
// snapshot.
//
// A write the user declined surfaces as ErrUserRejected; any other write or
// confirmation failure as ErrSubmissionFailed. The in-flight guard is cleared
// on every exit path so the user may retry.
func (c *Coordinator) Create(ctx context.Context, input CreateInput) (string, error) {
	if err := c.ensureReady(); err != nil {
		c.notifier.Error("Cannot share location: " + err.Error())
		return "", err
	}

	c.mu.Lock()
	if c.creating {
		c.mu.Unlock()
		return "", common.ErrInFlight
	}
	c.creating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.creating = false
		c.mu.Unlock()
	}()

	if err := input.validate(); err != nil {
		c.notifier.Error("Cannot share location: " + err.Error())
		return "", err
	}

	account, err := c.wallet.Account()
	if err != nil {
		c.notifier.Error("Wallet not connected")
		return "", err
	}

	c.notifier.Pending("Encrypting location…")

	payload, proof, err := c.fhe.EncryptInt64(fixedpoint.Encode(input.Latitude), c.contractAddr, account)
	if err != nil {
		c.notifier.Error("Failed to encrypt location: " + err.Error())
		return "", err
	}

	if err := c.wallet.Approve("share location " + input.Name); err != nil {
		if errors.Is(err, common.ErrUserRejected) {
			c.notifier.Error("Transaction rejected")
		} else {
			c.notifier.Error("Failed to share location: " + err.Error())
		}
		return "", err
	}

	id := fmt.Sprintf("location-%d-%s", c.nowFn().UnixMilli(), c.idSuffix())

	c.notifier.Pending("Waiting for transaction confirmation...")

	txID, err := c.ledger.CreateRecord(ctx, &api.CreateRecordRequest{
		ID:          id,
		Name:        input.Name,
		Payload:     payload,
		Proof:       proof,
		PublicCoord: fixedpoint.Encode(input.Longitude),
		Radius:      input.Radius,
		Description: input.Description,
	})
	if err != nil {
		c.notifier.Error("Failed to share location: " + err.Error())
		return "", fmt.Errorf("%w: %w", common.ErrSubmissionFailed, err)
	}

	if err := c.ledger.AwaitConfirmation(ctx, txID); err != nil {
		c.notifier.Error("Failed to share location: " + err.Error())
		return "", err
	}

	c.notifier.Success("Location shared securely!")

	if err := c.refresh(ctx); err != nil {
		c.log.Warn(ctx, "refresh after create failed", "error", err.Error())
	}

	return id, nil
}
