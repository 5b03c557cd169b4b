// Package confirm holds the pending state for two-step moderation actions.
// A destructive command first shows a preview with Confirm and Cancel
// buttons; the action only runs if the same invoker confirms within the
// window, and it runs at most once no matter how the buttons are mashed.
package confirm

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Window is how long a preview stays actionable before it expires.
const Window = 30 * time.Second

// Result reports what a Confirm or Cancel press did.
type Result int

const (
	// ResultExecuted means the action ran (Confirm) or was dropped (Cancel).
	ResultExecuted Result = iota
	// ResultNotFound means the pending action expired or was already resolved.
	ResultNotFound
	// ResultWrongUser means someone other than the invoker pressed the button.
	ResultWrongUser
)

type pending struct {
	invokerID string
	execute   func() error
	onExpire  func()
	timer     *time.Timer
}

// Manager tracks pending actions keyed by their correlation ID.
type Manager struct {
	mu      sync.Mutex
	actions map[string]*pending
	window  time.Duration
}

// NewManager creates a manager with the standard confirmation window.
func NewManager() *Manager {
	return NewManagerWithWindow(Window)
}

// NewManagerWithWindow creates a manager with a custom window, for tests.
func NewManagerWithWindow(window time.Duration) *Manager {
	return &Manager{
		actions: make(map[string]*pending),
		window:  window,
	}
}

// Key builds the correlation ID tying a preview to one action, one target
// and one invoker.
func Key(action, targetID, invokerID string) string {
	return fmt.Sprintf("%s:%s:%s", action, targetID, invokerID)
}

// ConfirmID is the custom ID for a preview's Confirm button.
func ConfirmID(key string) string { return "confirm:" + key }

// CancelID is the custom ID for a preview's Cancel button.
func CancelID(key string) string { return "cancel:" + key }

// ParseID splits a button custom ID into its verb and correlation key.
// ok is false for custom IDs that do not belong to this package.
func ParseID(customID string) (verb, key string, ok bool) {
	verb, key, found := strings.Cut(customID, ":")
	if !found || (verb != "confirm" && verb != "cancel") {
		return "", "", false
	}
	return verb, key, true
}

// Arm registers a pending action. Re-arming the same key replaces the older
// pending action, which then expires silently. onExpire fires only when the
// window lapses with no resolution, so the preview message can be disarmed.
func (m *Manager) Arm(key, invokerID string, execute func() error, onExpire func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, exists := m.actions[key]; exists {
		old.timer.Stop()
	}

	p := &pending{
		invokerID: invokerID,
		execute:   execute,
		onExpire:  onExpire,
	}
	p.timer = time.AfterFunc(m.window, func() { m.expire(key, p) })
	m.actions[key] = p
}

func (m *Manager) expire(key string, p *pending) {
	m.mu.Lock()
	// A stale timer from a replaced arm must not expire the replacement.
	if current, exists := m.actions[key]; !exists || current != p {
		m.mu.Unlock()
		return
	}
	delete(m.actions, key)
	m.mu.Unlock()

	if p.onExpire != nil {
		p.onExpire()
	}
}

// resolve removes the pending action if the user is allowed to act on it.
// Removal under the lock is what makes execution exactly-once.
func (m *Manager) resolve(key, userID string) (*pending, Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.actions[key]
	if !exists {
		return nil, ResultNotFound
	}
	if p.invokerID != userID {
		return nil, ResultWrongUser
	}

	delete(m.actions, key)
	p.timer.Stop()
	return p, ResultExecuted
}

// Confirm runs the pending action for key if userID is its invoker and the
// window has not lapsed. The action's own error is returned alongside
// ResultExecuted.
func (m *Manager) Confirm(key, userID string) (Result, error) {
	p, res := m.resolve(key, userID)
	if res != ResultExecuted {
		return res, nil
	}
	return ResultExecuted, p.execute()
}

// Cancel drops the pending action for key if userID is its invoker.
func (m *Manager) Cancel(key, userID string) Result {
	_, res := m.resolve(key, userID)
	return res
}

// PendingCount reports how many actions are currently awaiting confirmation.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.actions)
}
