// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgent_ProcessInTransaction(t *testing.T) {
	msg := New()
	agent := NewAgent(func(e Event) {
		assert.NoError(t, e.Error)
		assert.True(t, e.Message.Equal(msg))
	})
	assert.NoError(t, msg.NewTransactionID())
	assert.NoError(t, agent.Start(msg.TransactionID, time.Time{}))
	assert.NoError(t, agent.Process(msg))
	assert.NoError(t, agent.Close())
}

func TestAgent_Process(t *testing.T) {
	msg := New()
	agent := NewAgent(func(e Event) {
		assert.NoError(t, e.Error)
		assert.True(t, e.Message.Equal(msg))
	})
	assert.NoError(t, msg.NewTransactionID())
	assert.NoError(t, agent.Process(msg))
	assert.NoError(t, agent.Close())
	assert.ErrorIs(t, agent.Process(msg), ErrAgentClosed)
}

func TestAgent_Start(t *testing.T) {
	agent := NewAgent(nil)
	id := NewTransactionID()
	deadline := time.Now().AddDate(0, 0, 1)
	assert.NoError(t, agent.Start(id, deadline))
	assert.ErrorIs(t, agent.Start(id, deadline), ErrTransactionExists)
	assert.NoError(t, agent.Close())
	id = NewTransactionID()
	assert.ErrorIs(t, agent.Start(id, deadline), ErrAgentClosed)
	assert.ErrorIs(t, agent.SetHandler(nil), ErrAgentClosed)
}

func TestAgent_Stop(t *testing.T) {
	called := make(chan Event, 1)
	agent := NewAgent(func(e Event) {
		called <- e
	})
	assert.ErrorIs(t, agent.Stop(transactionID{}), ErrTransactionNotExists)
	id := NewTransactionID()
	timeout := time.Millisecond * 200
	assert.NoError(t, agent.Start(id, time.Now().Add(timeout)))
	assert.NoError(t, agent.Stop(id))
	select {
	case e := <-called:
		assert.ErrorIs(t, e.Error, ErrTransactionStopped)
		assert.Equal(t, id, e.TransactionID)
	case <-time.After(timeout * 2):
		assert.Fail(t, "timed out")
	}
	assert.NoError(t, agent.Close())
	assert.ErrorIs(t, agent.Close(), ErrAgentClosed)
	assert.ErrorIs(t, agent.Stop(transactionID{}), ErrAgentClosed)
}

// Records age out when their deadline passes: before the collection
// they can be consumed, afterwards they are gone.
func TestAgent_Lifecycle(t *testing.T) {
	events := make(chan Event, 2)
	agent := NewAgent(func(e Event) {
		events <- e
	})
	now := time.Now()
	invalidation := time.Millisecond * 100

	id := NewTransactionID()
	assert.NoError(t, agent.Start(id, now.Add(invalidation)))

	// Within the TTL the record is present: consuming it succeeds and
	// a later collection does not see it.
	assert.NoError(t, agent.Stop(id))
	<-events
	assert.NoError(t, agent.Collect(now.Add(invalidation+time.Millisecond*10)))
	select {
	case e := <-events:
		assert.Failf(t, "unexpected event", "%v", e)
	default:
	}

	// After the TTL the collection expires the record and consuming
	// it fails.
	id = NewTransactionID()
	assert.NoError(t, agent.Start(id, now.Add(invalidation)))
	assert.NoError(t, agent.Collect(now.Add(invalidation+time.Millisecond*10)))
	e := <-events
	assert.ErrorIs(t, e.Error, ErrTransactionTimeOut)
	assert.Equal(t, id, e.TransactionID)
	assert.ErrorIs(t, agent.Stop(id), ErrTransactionNotExists)

	assert.NoError(t, agent.Close())
}

func TestAgent_Collect(t *testing.T) {
	agent := NewAgent(nil)
	shouldTimeOutID := make(map[transactionID]bool)
	deadline := time.Date(2027, time.November, 21,
		23, 0, 0, 0,
		time.UTC,
	)
	gcDeadline := deadline.Add(-time.Second)
	deadlineNotGC := gcDeadline.AddDate(0, 0, -1)
	assert.NoError(t, agent.SetHandler(func(e Event) {
		id := e.TransactionID
		shouldTimeOut, found := shouldTimeOutID[id]
		assert.True(t, found, "unexpected transaction ID")
		if shouldTimeOut {
			assert.ErrorIs(t, e.Error, ErrTransactionTimeOut, "%x should time out", id)
		} else {
			assert.False(t, errors.Is(e.Error, ErrTransactionTimeOut), "%x should not time out", id)
		}
	}))
	for i := 0; i < 5; i++ {
		id := NewTransactionID()
		shouldTimeOutID[id] = false
		assert.NoError(t, agent.Start(id, deadline))
	}
	for i := 0; i < 5; i++ {
		id := NewTransactionID()
		shouldTimeOutID[id] = true
		assert.NoError(t, agent.Start(id, deadlineNotGC))
	}
	assert.NoError(t, agent.Collect(gcDeadline))
	assert.NoError(t, agent.Close())
	assert.ErrorIs(t, agent.Collect(gcDeadline), ErrAgentClosed)
}

// A zero deadline falls back to the default 150 s TTL.
func TestAgent_DefaultTTL(t *testing.T) {
	timedOut := make(chan Event, 1)
	agent := NewAgent(func(e Event) {
		timedOut <- e
	})
	id := NewTransactionID()
	assert.NoError(t, agent.Start(id, time.Time{}))

	// Just past now: nothing to collect.
	assert.NoError(t, agent.Collect(time.Now().Add(time.Second)))
	select {
	case <-timedOut:
		assert.Fail(t, "record must survive within the default TTL")
	default:
	}

	// Past the 150 s TTL the record is collected.
	assert.NoError(t, agent.Collect(time.Now().Add(defaultTransactionTTL+time.Second)))
	select {
	case e := <-timedOut:
		assert.ErrorIs(t, e.Error, ErrTransactionTimeOut)
	default:
		assert.Fail(t, "record must expire after the default TTL")
	}
	assert.NoError(t, agent.Close())
}

func TestAgent_Close(t *testing.T) {
	closed := 0
	agent := NewAgent(func(e Event) {
		assert.ErrorIs(t, e.Error, ErrAgentClosed)
		closed++
	})
	for i := 0; i < 3; i++ {
		assert.NoError(t, agent.Start(NewTransactionID(), time.Time{}))
	}
	assert.NoError(t, agent.Close())
	assert.Equal(t, 3, closed, "all pending transactions must observe close")
}

func BenchmarkAgent_Collect(b *testing.B) {
	agent := NewAgent(nil)
	deadline := time.Now().AddDate(0, 0, 1)
	for i := 0; i < agentCollectCap; i++ {
		if err := agent.Start(NewTransactionID(), deadline); err != nil {
			b.Fatal(err)
		}
	}
	defer agent.Close() //nolint:errcheck
	b.ReportAllocs()
	gcDeadline := deadline.Add(-time.Second)
	for i := 0; i < b.N; i++ {
		if err := agent.Collect(gcDeadline); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAgent_Process(b *testing.B) {
	agent := NewAgent(nil)
	deadline := time.Now().AddDate(0, 0, 1)
	for i := 0; i < 1000; i++ {
		if err := agent.Start(NewTransactionID(), deadline); err != nil {
			b.Fatal(err)
		}
	}
	defer agent.Close() //nolint:errcheck
	b.ReportAllocs()
	m := MustBuild(TransactionID)
	for i := 0; i < b.N; i++ {
		if err := agent.Process(m); err != nil {
			b.Fatal(err)
		}
	}
}
