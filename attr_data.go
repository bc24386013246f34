// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

// Data represents DATA attribute.
//
// The value is the application data that would immediately follow the
// UDP header if the data was sent directly between the client and the
// peer. Present in Send and Data indications.
//
// RFC 5766 Section 14.4.
type Data []byte

// AddTo adds DATA attribute to message.
func (d Data) AddTo(m *Message) error {
	m.Add(AttrData, d)

	return nil
}

// GetFrom decodes DATA attribute from message. The returned slice is a
// view into m.Raw.
func (d *Data) GetFrom(m *Message) error {
	v, err := m.Get(AttrData)
	if err != nil {
		return err
	}
	*d = v

	return nil
}
