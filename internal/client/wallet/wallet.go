// Package wallet models the user's wallet session: the account identity a
// record write is attributed to, and the interactive approval step every
// ledger transaction goes through.
package wallet

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/locshare/internal/common"
)

// ApproveFunc asks the user to approve a pending transaction described by
// action. It returns false when the user declines.
type ApproveFunc func(action string) bool

// Session is a connected wallet. The zero value is disconnected.
type Session struct {
	mu        sync.Mutex
	account   string
	approveFn ApproveFunc
}

// NewSession returns a disconnected session. approve may be nil, in which
// case every transaction is approved (useful for non-interactive use).
func NewSession(approve ApproveFunc) *Session {
	return &Session{approveFn: approve}
}

// NewRandomAccount generates a fresh account address.
func NewRandomAccount() (string, error) {
	s, err := common.MakeRandHexString(20)
	if err != nil {
		return "", err
	}
	return "0x" + s, nil
}

// Connect binds the session to an account address.
func (s *Session) Connect(account string) error {
	account = strings.TrimSpace(account)
	if account == "" {
		return fmt.Errorf("%w: empty account", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = account
	return nil
}

// Disconnect clears the bound account.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = ""
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account != ""
}

// Account returns the bound account address or ErrNotConnected.
func (s *Session) Account() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == "" {
		return "", common.ErrNotConnected
	}
	return s.account, nil
}

// Approve runs the interactive approval step for a pending transaction.
// It returns ErrNotConnected when no account is bound and ErrUserRejected
// when the user declines.
func (s *Session) Approve(action string) error {
	s.mu.Lock()
	approve := s.approveFn
	connected := s.account != ""
	s.mu.Unlock()

	if !connected {
		return common.ErrNotConnected
	}
	if approve != nil && !approve(action) {
		return common.ErrUserRejected
	}
	return nil
}
