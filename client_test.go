// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// bindingEchoServer answers every binding request on conn with a
// success response carrying a fixed XOR-MAPPED-ADDRESS.
func bindingEchoServer(t *testing.T, conn net.Conn) {
	t.Helper()
	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		req := new(Message)
		if _, err = req.Write(buf[:n]); err != nil {
			continue
		}
		resp := MustBuild(
			NewTransactionIDSetter(req.TransactionID),
			BindingSuccess,
			XORMappedAddress{IP: net.IPv4(127, 0, 0, 1), Port: 1001},
			Fingerprint,
		)
		if _, err = conn.Write(resp.Raw); err != nil {
			return
		}
	}
}

func TestClient_Do(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	go bindingEchoServer(t, serverConn)

	client, err := NewClient(ClientOptions{
		Connection: clientConn,
	})
	assert.NoError(t, err)

	done := make(chan struct{})
	request := MustBuild(TransactionID, BindingRequest)
	err = client.Do(request, func(e Event) {
		defer close(done)
		assert.NoError(t, e.Error)
		var addr XORMappedAddress
		assert.NoError(t, addr.GetFrom(e.Message))
		assert.Equal(t, "127.0.0.1", addr.IP.String())
		assert.Equal(t, 1001, addr.Port)
	})
	assert.NoError(t, err)
	select {
	case <-done:
	case <-time.After(time.Second):
		assert.Fail(t, "response timed out")
	}

	assert.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), ErrClientClosed)
	assert.NoError(t, serverConn.Close())
}

func TestClient_Indicate(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	received := make(chan *Message, 1)
	go func() {
		buf := make([]byte, 1024)
		n, err := serverConn.Read(buf)
		if err != nil {
			return
		}
		m := new(Message)
		if _, err = m.Write(buf[:n]); err != nil {
			return
		}
		received <- m
	}()

	client, err := NewClient(ClientOptions{Connection: clientConn})
	assert.NoError(t, err)

	ind, err := NewSendIndication(
		NewTransactionID(),
		XORPeerAddress{IP: net.IPv4(10, 0, 0, 1), Port: 34567},
		Data("hello"),
	)
	assert.NoError(t, err)
	assert.NoError(t, client.Indicate(ind))

	select {
	case m := <-received:
		assert.Equal(t, SendIndication, m.Type)
		var d Data
		assert.NoError(t, d.GetFrom(m))
		assert.Equal(t, "hello", string(d))
	case <-time.After(time.Second):
		assert.Fail(t, "indication timed out")
	}

	assert.NoError(t, client.Close())
	assert.NoError(t, serverConn.Close())
}

func TestClient_NoConnection(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestClient_StartClosed(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	client, err := NewClient(ClientOptions{Connection: clientConn})
	assert.NoError(t, err)
	assert.NoError(t, client.Close())
	assert.NoError(t, serverConn.Close())

	m := MustBuild(TransactionID, BindingRequest)
	assert.ErrorIs(t, client.Start(m, NoopHandler()), ErrClientClosed)
	assert.ErrorIs(t, client.Do(m, nil), ErrClientClosed)
}

func TestClient_NotInitialized(t *testing.T) {
	var client *Client
	assert.ErrorIs(t, client.Close(), ErrClientNotInitialized)
	assert.ErrorIs(t, client.Do(nil, nil), ErrClientNotInitialized)
}

func TestClient_RetransmissionTimeout(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	// Server never answers, draining writes so retransmissions do not
	// block the pipe.
	go func() {
		buf := make([]byte, 1024)
		for {
			if _, err := serverConn.Read(buf); err != nil {
				return
			}
		}
	}()

	client, err := NewClient(ClientOptions{
		Connection:  clientConn,
		TimeoutRate: time.Millisecond * 5,
		RTO:         time.Millisecond * 10,
	})
	assert.NoError(t, err)

	done := make(chan error, 1)
	request := MustBuild(TransactionID, BindingRequest)
	assert.NoError(t, client.Start(request, func(e Event) {
		done <- e.Error
	}))
	select {
	case err := <-done:
		assert.Error(t, err, "transaction against a silent server must fail")
	case <-time.After(time.Second * 5):
		assert.Fail(t, "transaction did not time out")
	}

	assert.NoError(t, client.Close())
	assert.NoError(t, serverConn.Close())
}

func TestDial_Error(t *testing.T) {
	_, err := Dial("udp", "///")
	assert.Error(t, err)
}
