// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import "errors"

// AddressFamily is the address family selector used by the TURN
// addressing attributes.
type AddressFamily byte

const (
	// AddressFamilyIPv4 selects the IPv4 address family.
	AddressFamilyIPv4 AddressFamily = 0x01
	// AddressFamilyIPv6 selects the IPv6 address family.
	AddressFamilyIPv6 AddressFamily = 0x02
)

func (f AddressFamily) String() string {
	switch f {
	case AddressFamilyIPv4:
		return "IPv4"
	case AddressFamilyIPv6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// ErrBadAddressFamily means that address family selector is neither
// IPv4 nor IPv6.
var ErrBadAddressFamily = errors.New("invalid address family value")

const addressFamilySize = 4

func addFamilyAttr(m *Message, t AttrType, f AddressFamily) error {
	if f != AddressFamilyIPv4 && f != AddressFamilyIPv6 {
		return ErrBadAddressFamily
	}
	v := make([]byte, addressFamilySize)
	v[0] = byte(f)
	// v[1:4] is RFFU = 0.
	m.Add(t, v)

	return nil
}

func getFamilyAttr(m *Message, t AttrType, f *AddressFamily) error {
	v, err := m.Get(t)
	if err != nil {
		return err
	}
	if err = CheckSize(t, len(v), addressFamilySize); err != nil {
		return err
	}
	family := AddressFamily(v[0])
	if family != AddressFamilyIPv4 && family != AddressFamilyIPv6 {
		return ErrBadAddressFamily
	}
	*f = family

	return nil
}

// RequestedAddressFamily represents REQUESTED-ADDRESS-FAMILY attribute.
//
// RFC 8656 Section 18.9.
type RequestedAddressFamily struct {
	Family AddressFamily
}

// AddTo adds REQUESTED-ADDRESS-FAMILY attribute to message.
func (a RequestedAddressFamily) AddTo(m *Message) error {
	return addFamilyAttr(m, AttrRequestedAddressFamily, a.Family)
}

// GetFrom decodes REQUESTED-ADDRESS-FAMILY attribute from message.
func (a *RequestedAddressFamily) GetFrom(m *Message) error {
	return getFamilyAttr(m, AttrRequestedAddressFamily, &a.Family)
}

// AdditionalAddressFamily represents ADDITIONAL-ADDRESS-FAMILY
// attribute. It may only carry the IPv6 family and is allowed only in
// an Allocate request.
//
// RFC 8656 Section 18.11.
type AdditionalAddressFamily struct {
	Family AddressFamily
}

// ErrNotIPv6AddressFamily means that ADDITIONAL-ADDRESS-FAMILY carries
// a family other than IPv6.
var ErrNotIPv6AddressFamily = errors.New("ADDITIONAL-ADDRESS-FAMILY must be IPv6")

// AddTo adds ADDITIONAL-ADDRESS-FAMILY attribute to message.
func (a AdditionalAddressFamily) AddTo(m *Message) error {
	if a.Family != AddressFamilyIPv6 {
		return ErrNotIPv6AddressFamily
	}

	return addFamilyAttr(m, AttrAdditionalAddressFamily, a.Family)
}

// GetFrom decodes ADDITIONAL-ADDRESS-FAMILY attribute from message.
func (a *AdditionalAddressFamily) GetFrom(m *Message) error {
	if err := getFamilyAttr(m, AttrAdditionalAddressFamily, &a.Family); err != nil {
		return err
	}
	if a.Family != AddressFamilyIPv6 {
		return ErrNotIPv6AddressFamily
	}

	return nil
}
