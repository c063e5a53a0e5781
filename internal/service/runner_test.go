package service

import (
	"context"
	"log/slog"
	"sync"
)

// mockRunner records every Run invocation and replays scripted responses in
// order. Once the script is exhausted it keeps answering with a bare OK.
type mockRunner struct {
	mu        sync.Mutex
	calls     [][]string
	responses [][]string
	err       error
}

func (m *mockRunner) Run(_ context.Context, commands ...string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, commands)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return []string{"OK"}, nil
	}
	lines := m.responses[0]
	m.responses = m.responses[1:]
	return lines, nil
}

// lastCall returns the most recent command batch, nil when nothing ran.
func (m *mockRunner) lastCall() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

func (m *mockRunner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
