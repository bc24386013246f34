// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTransactionID = [TransactionIDSize]byte{ //nolint:gochecknoglobals
	0xFA, 0xCE, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00,
}

// The on-wire port is XOR-ed with the top 16 bits of the magic cookie,
// the IPv4 address with the full magic cookie.
func TestXORMappedAddress_Wire(t *testing.T) {
	m := MustBuild(NewTransactionIDSetter(testTransactionID), BindingSuccess)
	addr := XORMappedAddress{
		IP:   net.ParseIP("192.0.2.1"),
		Port: 32853,
	}
	assert.NoError(t, addr.AddTo(m))

	v, err := m.Get(AttrXORMappedAddress)
	assert.NoError(t, err)
	assert.Len(t, v, 8)
	assert.Equal(t, familyIPv4, bin.Uint16(v[0:2]))
	assert.Equal(t, uint16(32853^0x2112), bin.Uint16(v[2:4]), "port must be XOR-ed with 0x2112")
	assert.Equal(t,
		[]byte{192 ^ 0x21, 0 ^ 0x12, 2 ^ 0xA4, 1 ^ 0x42},
		v[4:8],
		"address must be XOR-ed with the magic cookie",
	)

	got := new(XORMappedAddress)
	assert.NoError(t, got.GetFrom(m))
	assert.Equal(t, "192.0.2.1", got.IP.String())
	assert.Equal(t, 32853, got.Port)
}

// XOR-encode followed by XOR-decode with the same header is the
// identity, for both families.
func TestXORMappedAddress_Involution(t *testing.T) {
	for _, tc := range []struct {
		name string
		ip   string
		port int
	}{
		{"IPv4", "213.141.156.236", 21254},
		{"IPv6", "2001:db8:1234:5678:11:2233:4455:6677", 32853},
		{"IPv4 in IPv6", "::ffff:5.6.7.8", 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := MustBuild(TransactionID, BindingSuccess)
			in := XORMappedAddress{IP: net.ParseIP(tc.ip), Port: tc.port}
			assert.NoError(t, in.AddTo(m))

			decoded := new(Message)
			_, err := decoded.Write(m.Raw)
			assert.NoError(t, err)

			out := new(XORMappedAddress)
			assert.NoError(t, out.GetFrom(decoded))
			assert.True(t, out.IP.Equal(in.IP), "expected %s, got %s", in.IP, out.IP)
			assert.Equal(t, in.Port, out.Port)
		})
	}
}

func TestXORMappedAddress_Errors(t *testing.T) {
	t.Run("Not found", func(t *testing.T) {
		m := New()
		assert.ErrorIs(t, new(XORMappedAddress).GetFrom(m), ErrAttributeNotFound)
	})
	t.Run("Bad IP length", func(t *testing.T) {
		m := New()
		addr := XORMappedAddress{IP: net.IP{1, 2, 3}, Port: 1}
		assert.ErrorIs(t, addr.AddTo(m), ErrBadIPLength)
	})
	t.Run("Bad family", func(t *testing.T) {
		m := New()
		m.Add(AttrXORMappedAddress, []byte{0x00, 0x45, 0x00, 0x01, 1, 2, 3, 4})
		assert.Error(t, new(XORMappedAddress).GetFrom(m))
	})
	t.Run("Short value", func(t *testing.T) {
		m := New()
		m.Add(AttrXORMappedAddress, []byte{0x00, 0x01, 0x00})
		assert.Error(t, new(XORMappedAddress).GetFrom(m))
	})
}

func TestXORPeerAddress(t *testing.T) {
	m := MustBuild(TransactionID, CreatePermissionRequest)
	peer := XORPeerAddress{IP: net.ParseIP("213.141.156.236"), Port: 1234}
	assert.Equal(t, "213.141.156.236:1234", peer.String())
	assert.NoError(t, peer.AddTo(m))

	got := new(XORPeerAddress)
	assert.NoError(t, got.GetFrom(m))
	assert.True(t, got.IP.Equal(peer.IP))
	assert.Equal(t, peer.Port, got.Port)

	// Stored under the XOR-PEER-ADDRESS type, not XOR-MAPPED-ADDRESS.
	assert.True(t, m.Contains(AttrXORPeerAddress))
	assert.False(t, m.Contains(AttrXORMappedAddress))
}

func TestXORRelayedAddress(t *testing.T) {
	m := MustBuild(TransactionID, NewType(MethodAllocate, ClassSuccessResponse))
	relayed := XORRelayedAddress{IP: net.ParseIP("5.6.7.8"), Port: 49152}
	assert.NoError(t, relayed.AddTo(m))

	got := new(XORRelayedAddress)
	assert.NoError(t, got.GetFrom(m))
	assert.True(t, got.IP.Equal(relayed.IP))
	assert.Equal(t, relayed.Port, got.Port)
}

func BenchmarkXORMappedAddress_AddTo(b *testing.B) {
	m := MustBuild(TransactionID, BindingSuccess)
	addr := XORMappedAddress{IP: net.ParseIP("192.0.2.1"), Port: 32853}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := addr.AddTo(m); err != nil {
			b.Fatal(err)
		}
		m.Reset()
		m.WriteHeader()
	}
}
