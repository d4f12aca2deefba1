package coordinator

import (
	"sync"
	"time"
)

// Notification statuses.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Notification is the single user-facing status value.
type Notification struct {
	Status  Status
	Message string
}

// Notifier holds at most one current notification. A new notification always
// replaces the current one (last write wins, no queueing). Success and error
// notifications clear themselves after a fixed dwell time counted from when
// they were set; being replaced cancels the previous timer's effect via a
// generation counter.
type Notifier struct {
	mu      sync.Mutex
	current *Notification
	gen     uint64

	successDwell time.Duration
	errorDwell   time.Duration

	// afterFunc is a test seam for time.AfterFunc.
	afterFunc func(d time.Duration, f func()) *time.Timer
}

func NewNotifier() *Notifier {
	return &Notifier{
		successDwell: 2 * time.Second,
		errorDwell:   3 * time.Second,
		afterFunc:    time.AfterFunc,
	}
}

// Current returns the displayed notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Pending sets a pending notification. It does not auto-clear; a pending
// state is always replaced by a terminal one.
func (n *Notifier) Pending(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.current = &Notification{Status: StatusPending, Message: message}
}

// Success sets a success notification that clears after the success dwell.
func (n *Notifier) Success(message string) {
	n.set(Notification{Status: StatusSuccess, Message: message}, n.successDwell)
}

// Error sets an error notification that clears after the error dwell.
func (n *Notifier) Error(message string) {
	n.set(Notification{Status: StatusError, Message: message}, n.errorDwell)
}

func (n *Notifier) set(notification Notification, dwell time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	gen := n.gen
	n.current = &notification

	// The timer only clears the notification it was armed for. If a newer
	// notification replaced it, the generation no longer matches and the
	// newer notification's own timer governs clearing.
	n.afterFunc(dwell, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen == gen {
			n.current = nil
		}
	})
}
