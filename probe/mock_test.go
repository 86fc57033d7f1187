package probe

import (
	"context"
	"sync"
	"time"

	"github.com/moffa90/go-voltix/protocol"
)

// MockTransport replays canned response bodies and records every command.
type MockTransport struct {
	product   string
	responses [][]byte
	respIdx   int
	err       error
	calls     []protocol.Command
	closed    bool
	closeErr  error
}

func NewMockTransport(product string) *MockTransport {
	return &MockTransport{product: product}
}

func (m *MockTransport) ProductName() string {
	return m.product
}

func (m *MockTransport) VendorCmd(_ context.Context, req protocol.RequestID, payload []byte) ([]byte, error) {
	m.calls = append(m.calls, protocol.Command{Request: req, Payload: append([]byte(nil), payload...)})
	if m.err != nil {
		return nil, m.err
	}
	if m.respIdx < len(m.responses) {
		resp := m.responses[m.respIdx]
		m.respIdx++
		return resp, nil
	}
	return []byte{}, nil
}

func (m *MockTransport) Close() error {
	m.closed = true
	return m.closeErr
}

func (m *MockTransport) AddResponse(data []byte) {
	m.responses = append(m.responses, data)
}

func (m *MockTransport) SetError(err error) {
	m.err = err
}

// MockObserver records observer callbacks.
type MockObserver struct {
	mu       sync.Mutex
	commands []observedCommand
	targets  []observedTarget
}

type observedCommand struct {
	variant   string
	operation string
	result    string
}

type observedTarget struct {
	kind string
	open bool
}

func (o *MockObserver) ObserveCommand(variant, operation, result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.commands = append(o.commands, observedCommand{variant, operation, result})
}

func (o *MockObserver) ObserveTargetSession(_ string, kind string, open bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.targets = append(o.targets, observedTarget{kind, open})
}
