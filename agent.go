// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"errors"
	"sync"
	"time"
)

// NoopHandler just discards any event.
func NoopHandler() Handler {
	return func(Event) {}
}

// NewAgent initializes and returns new Agent with provided handler.
// If handler is nil, the NoopHandler will be used.
func NewAgent(handler Handler) *Agent {
	if handler == nil {
		handler = NoopHandler()
	}
	agent := &Agent{
		transactions: make(map[transactionID]agentTransaction),
		handler:      handler,
	}

	return agent
}

// Agent is a low-level abstraction over transaction list that creates
// and removes transaction records and finds them by the transaction id
// of incoming messages.
//
// The records own nothing but their deadlines: contexts associated with
// a transaction are captured by the caller's handler closure and are
// handed back verbatim through Event.
type Agent struct {
	// transactions is map of transactions that are currently
	// in progress. Event handling is done in such way when
	// transaction is unregistered before AgentTransaction access,
	// minimizing mux lock and protecting AgentTransaction from
	// data races via unexpected concurrent access.
	transactions map[transactionID]agentTransaction
	closed       bool       // all calls are invalid if true
	mux          sync.Mutex // protects transactions and closed
	handler      Handler    // handles transactions
}

// Handler handles state changes of transaction.
//
// Handler is called on transaction state change.
// Usage of e is valid only during call, user must
// copy needed fields explicitly.
type Handler func(e Event)

// Event is passed to Handler describing the transaction event.
// Do not reuse outside Handler.
type Event struct {
	TransactionID [TransactionIDSize]byte
	Message       *Message
	Error         error
}

// agentTransaction represents transaction in progress.
// Concurrent access is invalid.
type agentTransaction struct {
	id       transactionID
	deadline time.Time
}

// defaultTransactionTTL is how long a transaction stays registered when
// no explicit deadline is provided to Start.
const defaultTransactionTTL = time.Second * 150

var (
	// ErrTransactionStopped indicates that transaction was manually stopped.
	ErrTransactionStopped = errors.New("transaction is stopped")
	// ErrTransactionNotExists indicates that agent failed to find transaction.
	ErrTransactionNotExists = errors.New("transaction not exists")
	// ErrTransactionExists indicates that transaction with same id is already
	// registered.
	ErrTransactionExists = errors.New("transaction exists with same id")
)

// StopWithError removes transaction from list and calls handler with
// provided error. Can return ErrTransactionNotExists and ErrAgentClosed.
func (a *Agent) StopWithError(id [TransactionIDSize]byte, err error) error {
	a.mux.Lock()
	if a.closed {
		a.mux.Unlock()

		return ErrAgentClosed
	}
	t, exists := a.transactions[id]
	delete(a.transactions, id)
	handler := a.handler
	a.mux.Unlock()
	if !exists {
		return ErrTransactionNotExists
	}
	handler(Event{
		TransactionID: t.id,
		Error:         err,
	})

	return nil
}

// Stop stops transaction by id with ErrTransactionStopped, blocking
// until handler returns.
func (a *Agent) Stop(id [TransactionIDSize]byte) error {
	return a.StopWithError(id, ErrTransactionStopped)
}

// ErrAgentClosed indicates that agent is in closed state and is unable
// to handle transactions.
var ErrAgentClosed = errors.New("agent is closed")

// Start registers transaction with provided id and deadline.
// Could return ErrAgentClosed, ErrTransactionExists.
//
// If deadline is the zero time, the default 150 s TTL is used.
//
// Agent handler is guaranteed to be eventually called.
func (a *Agent) Start(id [TransactionIDSize]byte, deadline time.Time) error {
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.closed {
		return ErrAgentClosed
	}
	if _, exists := a.transactions[id]; exists {
		return ErrTransactionExists
	}
	if deadline.IsZero() {
		deadline = time.Now().Add(defaultTransactionTTL)
	}
	a.transactions[id] = agentTransaction{
		id:       id,
		deadline: deadline,
	}

	return nil
}

// agentCollectCap is initial capacity for Agent.Collect slices,
// sufficient to make function zero-alloc in most cases.
const agentCollectCap = 100

// ErrTransactionTimeOut indicates that transaction has reached deadline.
var ErrTransactionTimeOut = errors.New("transaction is timed out")

// Collect terminates all transactions that have deadline before
// provided time, blocking until all handlers will process
// ErrTransactionTimeOut. Will return ErrAgentClosed if agent is already
// closed.
//
// It is safe to call Collect concurrently but makes no sense.
func (a *Agent) Collect(gcTime time.Time) error {
	toRemove := make([]transactionID, 0, agentCollectCap)
	a.mux.Lock()
	if a.closed {
		// Doing nothing if agent is closed.
		// All transactions should be already closed
		// during Close() call.
		a.mux.Unlock()

		return ErrAgentClosed
	}
	// Adding all transactions with deadline before gcTime
	// to the toRemove slice.
	// No allocs if there are less than agentCollectCap
	// timed out transactions.
	for id, t := range a.transactions {
		if t.deadline.Before(gcTime) {
			toRemove = append(toRemove, id)
		}
	}
	// Un-registering timed out transactions.
	for _, id := range toRemove {
		delete(a.transactions, id)
	}
	// Calling handler does not require locked mutex,
	// reducing lock time.
	handler := a.handler
	a.mux.Unlock()
	// Sending ErrTransactionTimeOut to handler for all transactions,
	// blocking until last one.
	event := Event{
		Error: ErrTransactionTimeOut,
	}
	for _, id := range toRemove {
		event.TransactionID = id
		handler(event)
	}

	return nil
}

// Process incoming message, unregistering the matching transaction and
// passing the message to the handler. Blocks until handler returns.
func (a *Agent) Process(m *Message) error {
	e := Event{
		TransactionID: m.TransactionID,
		Message:       m,
	}
	a.mux.Lock()
	if a.closed {
		a.mux.Unlock()

		return ErrAgentClosed
	}
	delete(a.transactions, m.TransactionID)
	handler := a.handler
	a.mux.Unlock()
	handler(e)

	return nil
}

// SetHandler sets agent handler to h.
func (a *Agent) SetHandler(h Handler) error {
	if h == nil {
		h = NoopHandler()
	}
	a.mux.Lock()
	if a.closed {
		a.mux.Unlock()

		return ErrAgentClosed
	}
	a.handler = h
	a.mux.Unlock()

	return nil
}

// Close terminates all transactions with ErrAgentClosed and renders
// agent to closed state.
func (a *Agent) Close() error {
	e := Event{
		Error: ErrAgentClosed,
	}
	a.mux.Lock()
	if a.closed {
		a.mux.Unlock()

		return ErrAgentClosed
	}
	for _, t := range a.transactions {
		e.TransactionID = t.id
		a.handler(e)
	}
	a.transactions = nil
	a.closed = true
	a.handler = nil
	a.mux.Unlock()

	return nil
}

type transactionID [TransactionIDSize]byte

// AddTo sets m.TransactionID to t.
func (t transactionID) AddTo(m *Message) error {
	m.TransactionID = t
	m.WriteTransactionID()

	return nil
}
