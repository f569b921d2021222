package notify

import "sync"

// MockNotifier records messages for verification in tests
type MockNotifier struct {
	mu       sync.Mutex
	Messages []string
}

// NewMockNotifier creates an empty mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Messages: []string{}}
}

// Notify implements Notifier
func (m *MockNotifier) Notify(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, message)
}

// Count returns the number of recorded messages
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}

// Last returns the most recent message or ""
func (m *MockNotifier) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}
