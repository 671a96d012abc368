// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// This file contains mock implementations for the signup wizard's dependencies:
//   - MockAccounts: signup.AccountService with a controllable result and an optional gate
//   - MockNavigator: records navigation routes
//   - MockInviteQueue: records queued invites
//   - MockProgram: records messages sent to a running program
//
// All mocks are thread-safe and provide verification methods for assertions in tests.
//
// Example usage:
//
//	func TestMyComponent(t *testing.T) {
//	    accounts := testfixtures.NewMockAccounts()
//	    accounts.Err = errors.New("boom")
//
//	    // Use mocks in your test...
//	    // Later verify calls:
//	    require.Equal(t, 1, accounts.Calls())
//	}
package testfixtures

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/onboard/internal/signup"
)

// MockAccounts is a mock signup.AccountService.
type MockAccounts struct {
	mu sync.Mutex

	// Account to return on success. Defaults to FixedAccount().
	Account *signup.Account
	// Err to return instead of an account
	Err error
	// Gate, when non-nil, blocks Register until it is closed.
	Gate chan struct{}

	payloads []signup.Payload
}

// NewMockAccounts creates a MockAccounts that succeeds with FixedAccount.
func NewMockAccounts() *MockAccounts {
	return &MockAccounts{Account: FixedAccount()}
}

// Register records the payload and returns the configured result.
func (m *MockAccounts) Register(ctx context.Context, p signup.Payload) (*signup.Account, error) {
	m.mu.Lock()
	m.payloads = append(m.payloads, p)
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Account, nil
}

// Calls returns how many times Register was called.
func (m *MockAccounts) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

// LastPayload returns the most recent payload, or the zero value.
func (m *MockAccounts) LastPayload() signup.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.payloads) == 0 {
		return signup.Payload{}
	}
	return m.payloads[len(m.payloads)-1]
}

// SetErr changes the error returned by later calls.
func (m *MockAccounts) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// MockNavigator records every Navigate call.
type MockNavigator struct {
	mu     sync.Mutex
	routes []string
}

// NewMockNavigator creates an empty MockNavigator.
func NewMockNavigator() *MockNavigator {
	return &MockNavigator{}
}

// Navigate records route.
func (m *MockNavigator) Navigate(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = append(m.routes, route)
}

// Routes returns a copy of the recorded routes.
func (m *MockNavigator) Routes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.routes...)
}

// MockInviteQueue records queued invites.
type MockInviteQueue struct {
	mu sync.Mutex

	// Err to return from Enqueue
	Err error

	Company string
	Invites []signup.Invite
}

// NewMockInviteQueue creates an empty MockInviteQueue.
func NewMockInviteQueue() *MockInviteQueue {
	return &MockInviteQueue{}
}

// Enqueue records the invites.
func (m *MockInviteQueue) Enqueue(_ context.Context, company string, invites []signup.Invite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Company = company
	m.Invites = append(m.Invites, invites...)
	return nil
}

// Queued returns how many invites were recorded.
func (m *MockInviteQueue) Queued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Invites)
}

// MockProgram records messages sent to a program.
type MockProgram struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

// NewMockProgram creates an empty MockProgram.
func NewMockProgram() *MockProgram {
	return &MockProgram{}
}

// Send records msg.
func (m *MockProgram) Send(msg tea.Msg) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
}

// Messages returns a copy of the recorded messages.
func (m *MockProgram) Messages() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tea.Msg(nil), m.msgs...)
}
