package messaging

import "context"

// MockSender records messages in memory for tests.
type MockSender struct {
	Sent []*DoneMessage
}

// NewMockSender creates a new MockSender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// SendDoneMessage records the message.
func (m *MockSender) SendDoneMessage(_ context.Context, done *DoneMessage) error {
	m.Sent = append(m.Sent, done)
	return nil
}

// Close does nothing.
func (m *MockSender) Close() error {
	return nil
}

// Ensure MockSender implements Sender
var _ Sender = (*MockSender)(nil)
