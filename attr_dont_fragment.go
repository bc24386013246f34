// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

// DontFragmentAttr represents DONT-FRAGMENT attribute. It has no
// content, its presence requests that the server set the DF bit on
// relayed application data.
//
// RFC 5766 Section 14.8.
type DontFragmentAttr struct{}

// DontFragment is shorthand for DontFragmentAttr.
var DontFragment DontFragmentAttr //nolint:gochecknoglobals

// AddTo adds DONT-FRAGMENT attribute to message.
func (DontFragmentAttr) AddTo(m *Message) error {
	m.Add(AttrDontFragment, nil)

	return nil
}

// IsSet returns true if DONT-FRAGMENT attribute is set.
func (DontFragmentAttr) IsSet(m *Message) bool {
	_, err := m.Get(AttrDontFragment)

	return err == nil
}
