// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import "errors"

// ChannelNumber represents CHANNEL-NUMBER attribute.
//
// The value contains the number of the channel in the first two bytes,
// followed by two reserved bytes.
//
// RFC 5766 Section 14.1.
type ChannelNumber uint16

const channelNumberSize = 4

// Channel numbers are allocated from the range 0x4000 through 0x7FFF.
const (
	// MinChannelNumber is the minimum allowed channel number.
	MinChannelNumber ChannelNumber = 0x4000
	// MaxChannelNumber is the maximum allowed channel number.
	MaxChannelNumber ChannelNumber = 0x7FFF
)

// ErrBadChannelNumber means that channel number is not in the allocated
// range.
var ErrBadChannelNumber = errors.New("channel number not in [0x4000, 0x7FFF]")

// Valid returns true if c is in the allowed range.
func (c ChannelNumber) Valid() bool {
	return c >= MinChannelNumber && c <= MaxChannelNumber
}

// AddTo adds CHANNEL-NUMBER attribute to message.
func (c ChannelNumber) AddTo(m *Message) error {
	if !c.Valid() {
		return ErrBadChannelNumber
	}
	v := make([]byte, channelNumberSize)
	bin.PutUint16(v[:2], uint16(c))
	// v[2:4] is RFFU = 0
	m.Add(AttrChannelNumber, v)

	return nil
}

// GetFrom decodes CHANNEL-NUMBER attribute from message.
func (c *ChannelNumber) GetFrom(m *Message) error {
	v, err := m.Get(AttrChannelNumber)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrChannelNumber, len(v), channelNumberSize); err != nil {
		return err
	}
	*c = ChannelNumber(bin.Uint16(v[:2]))

	return nil
}
