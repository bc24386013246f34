// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownAttributes(t *testing.T) {
	m := new(Message)
	attr := UnknownAttributes{AttrDontFragment, AttrChannelNumber}
	assert.Equal(t, "DONT-FRAGMENT, CHANNEL-NUMBER", attr.String())
	assert.NoError(t, attr.AddTo(m))

	t.Run("GetFrom", func(t *testing.T) {
		attrs := make(UnknownAttributes, 10)
		assert.NoError(t, attrs.GetFrom(m))
		for i, at := range attr {
			assert.Equal(t, at, attrs[i])
		}
		m.Reset()
		m.Add(AttrUnknownAttributes, []byte{1, 2, 3})
		assert.ErrorIs(t, attrs.GetFrom(m), ErrBadUnknownAttrsSize)
	})
}

func TestUnknownAttributes_Empty(t *testing.T) {
	m := new(Message)
	assert.NoError(t, UnknownAttributes{}.AddTo(m))

	attrs := make(UnknownAttributes, 0)
	assert.NoError(t, attrs.GetFrom(m))
	assert.Empty(t, attrs)
}
