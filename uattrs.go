// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"errors"
	"strings"
)

// UnknownAttributes represents UNKNOWN-ATTRIBUTES attribute.
//
// RFC 5389 Section 15.9.
type UnknownAttributes []AttrType

func (a UnknownAttributes) String() string {
	str := make([]string, 0, len(a))
	for _, t := range a {
		str = append(str, t.String())
	}

	return strings.Join(str, ", ")
}

// type size is 16 bit.
const attrTypeSize = 2

// AddTo adds UNKNOWN-ATTRIBUTES attribute to message.
func (a UnknownAttributes) AddTo(m *Message) error {
	v := make([]byte, 0, attrTypeSize*20) // 20 should be enough
	// If len(a) > 20, there will be allocations.
	for i, t := range a {
		v = append(v, 0, 0)
		bin.PutUint16(v[i*attrTypeSize:i*attrTypeSize+attrTypeSize], t.Value())
	}
	m.Add(AttrUnknownAttributes, v)

	return nil
}

// ErrBadUnknownAttrsSize means that UNKNOWN-ATTRIBUTES attribute value
// has invalid length.
var ErrBadUnknownAttrsSize = errors.New("bad UNKNOWN-ATTRIBUTES size")

// GetFrom parses UNKNOWN-ATTRIBUTES from message.
func (a *UnknownAttributes) GetFrom(m *Message) error {
	v, err := m.Get(AttrUnknownAttributes)
	if err != nil {
		return err
	}
	if len(v)%attrTypeSize != 0 {
		return ErrBadUnknownAttrsSize
	}
	*a = (*a)[:0]
	first := 0
	for first < len(v) {
		last := first + attrTypeSize
		*a = append(*a, AttrType(bin.Uint16(v[first:last])))
		first = last
	}

	return nil
}
