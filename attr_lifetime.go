// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import "time"

// Lifetime represents LIFETIME attribute.
//
// The value is the duration for which the server will maintain an
// allocation in the absence of a refresh, encoded as an unsigned
// number of seconds.
//
// RFC 5766 Section 14.2.
type Lifetime struct {
	time.Duration
}

// uint32 seconds.
const lifetimeSize = 4 // 4 bytes, 32 bits

// AddTo adds LIFETIME attribute to message.
func (l Lifetime) AddTo(m *Message) error {
	v := make([]byte, lifetimeSize)
	bin.PutUint32(v, uint32(l.Seconds())) //nolint:gosec // G115
	m.Add(AttrLifetime, v)

	return nil
}

// GetFrom decodes LIFETIME attribute from message.
func (l *Lifetime) GetFrom(m *Message) error {
	v, err := m.Get(AttrLifetime)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrLifetime, len(v), lifetimeSize); err != nil {
		return err
	}
	l.Duration = time.Second * time.Duration(bin.Uint32(v))

	return nil
}
