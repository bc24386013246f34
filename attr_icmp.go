// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import "fmt"

// ICMPInfo represents ICMP attribute.
//
// The value carries the type and code of an ICMP error packet that
// arrived at the relayed transport address, plus 4 bytes of the ICMP
// error data. The first two value bytes are reserved.
//
// RFC 8656 Section 18.12.
type ICMPInfo struct {
	Type byte
	Code byte
	Data uint32
}

func (i ICMPInfo) String() string {
	return fmt.Sprintf("icmp type=%d code=%d", i.Type, i.Code)
}

const icmpInfoSize = 8

// AddTo adds ICMP attribute to message.
func (i ICMPInfo) AddTo(m *Message) error {
	v := make([]byte, icmpInfoSize)
	// v[0:2] is reserved.
	v[2] = i.Type
	v[3] = i.Code
	bin.PutUint32(v[4:8], i.Data)
	m.Add(AttrICMP, v)

	return nil
}

// GetFrom decodes ICMP attribute from message.
func (i *ICMPInfo) GetFrom(m *Message) error {
	v, err := m.Get(AttrICMP)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrICMP, len(v), icmpInfoSize); err != nil {
		return err
	}
	i.Type = v[2]
	i.Code = v[3]
	i.Data = bin.Uint32(v[4:8])

	return nil
}
