// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import "strconv"

// Protocol is IANA assigned protocol number.
type Protocol byte

const (
	// ProtoTCP is IANA assigned protocol number for TCP.
	ProtoTCP Protocol = 6
	// ProtoUDP is IANA assigned protocol number for UDP.
	ProtoUDP Protocol = 17
)

func (p Protocol) String() string {
	switch p {
	case ProtoUDP:
		return "UDP"
	case ProtoTCP:
		return "TCP"
	default:
		return strconv.Itoa(int(p))
	}
}

// RequestedTransport represents REQUESTED-TRANSPORT attribute.
//
// The value is 4 bytes: the protocol number followed by three RFFU
// bytes, which are set to zero on transmission and ignored on
// reception.
//
// RFC 5766 Section 14.7.
type RequestedTransport struct {
	Protocol Protocol
}

func (t RequestedTransport) String() string {
	return "protocol: " + t.Protocol.String()
}

const requestedTransportSize = 4

// AddTo adds REQUESTED-TRANSPORT attribute to message.
func (t RequestedTransport) AddTo(m *Message) error {
	v := make([]byte, requestedTransportSize)
	v[0] = byte(t.Protocol)
	// b[1:4] is RFFU = 0.
	m.Add(AttrRequestedTransport, v)

	return nil
}

// GetFrom decodes REQUESTED-TRANSPORT attribute from message.
func (t *RequestedTransport) GetFrom(m *Message) error {
	v, err := m.Get(AttrRequestedTransport)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrRequestedTransport, len(v), requestedTransportSize); err != nil {
		return err
	}
	t.Protocol = Protocol(v[0])

	return nil
}
