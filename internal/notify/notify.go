// Package notify delivers short user-facing messages about data load failures.
package notify

import (
	"sync"
	"time"

	"github.com/evyataryagoni/travelgeo/internal/logger"
)

// Notifier is a fire-and-forget sink for transient messages
type Notifier interface {
	Notify(message string)
}

// AlertBoard keeps the most recent message until it expires.
// A newer message replaces the current one and restarts the TTL.
type AlertBoard struct {
	mu      sync.RWMutex
	message string
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewAlertBoard creates a board whose messages live for ttl
func NewAlertBoard(ttl time.Duration) *AlertBoard {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &AlertBoard{ttl: ttl, now: time.Now}
}

// Notify implements Notifier
func (b *AlertBoard) Notify(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = message
	b.expires = b.now().Add(b.ttl)
}

// Current returns the live message, if any
func (b *AlertBoard) Current() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.message == "" || !b.now().Before(b.expires) {
		return "", false
	}
	return b.message, true
}

// LogNotifier writes messages as warnings
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a notifier backed by the given logger
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LogNotifier{logger: log.WithComponent("Notifier")}
}

// Notify implements Notifier
func (n *LogNotifier) Notify(message string) {
	n.logger.Warn().Str("alert", message).Msg("User notification")
}

// Multi fans a message out to several notifiers
type Multi []Notifier

// Notify implements Notifier
func (m Multi) Notify(message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(message)
		}
	}
}

// Discard drops every message
type Discard struct{}

// Notify implements Notifier
func (Discard) Notify(string) {}
