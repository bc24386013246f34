// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriority(t *testing.T) {
	m := New()
	p := Priority(0x6e0001ff)
	assert.NoError(t, p.AddTo(m))

	v, err := m.Get(AttrPriority)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x6e, 0x00, 0x01, 0xff}, v)

	var got Priority
	assert.NoError(t, got.GetFrom(m))
	assert.Equal(t, p, got)

	t.Run("BadSize", func(t *testing.T) {
		m := New()
		m.Add(AttrPriority, []byte{1, 2})
		assert.True(t, IsAttrSizeInvalid(got.GetFrom(m)))
	})
}

func TestUseCandidate(t *testing.T) {
	m := New()
	assert.False(t, UseCandidate.IsSet(m))
	assert.NoError(t, UseCandidate.AddTo(m))
	assert.True(t, UseCandidate.IsSet(m))

	// Zero-length value, 4-byte on-wire footprint.
	a, ok := m.Attributes.Get(AttrUseCandidate)
	assert.True(t, ok)
	assert.Zero(t, a.Length)
	assert.Len(t, m.Raw, messageHeaderSize+attributeHeaderSize)
}

func TestICEControlled(t *testing.T) {
	m := New()
	c := ICEControlled(0x932ff9b151263b36)
	assert.NoError(t, c.AddTo(m))

	v, err := m.Get(AttrICEControlled)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x93, 0x2f, 0xf9, 0xb1, 0x51, 0x26, 0x3b, 0x36}, v)

	var got ICEControlled
	assert.NoError(t, got.GetFrom(m))
	assert.Equal(t, c, got)

	t.Run("BadSize", func(t *testing.T) {
		m := New()
		m.Add(AttrICEControlled, []byte{1, 2})
		assert.True(t, IsAttrSizeInvalid(got.GetFrom(m)))
	})
}

func TestICEControlling(t *testing.T) {
	m := New()
	c := ICEControlling(0xdeadbeefcafef00d)
	assert.NoError(t, c.AddTo(m))

	var got ICEControlling
	assert.NoError(t, got.GetFrom(m))
	assert.Equal(t, c, got)
}

// Role conflict handling composes the ICE tiebreaker attributes with
// the 487 error code.
func TestICERoleConflictResponse(t *testing.T) {
	req := MustBuild(TransactionID, BindingRequest,
		NewUsername("L:R"), ICEControlling(42),
	)
	resp, err := NewErrorResponse(req, CodeRoleConflict, nil)
	assert.NoError(t, err)

	got := new(ErrorCodeAttribute)
	assert.NoError(t, got.GetFrom(resp))
	assert.Equal(t, CodeRoleConflict, got.Code)
	assert.Equal(t, []byte("role conflict"), got.Reason)
}
