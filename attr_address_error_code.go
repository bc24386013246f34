// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"fmt"
	"io"
)

// AddressErrorCodeAttribute represents ADDRESS-ERROR-CODE attribute.
//
// The value reports an address-family specific error inside a dual
// allocation: the family selector, the 3-digit error code split into
// class and number, and a UTF-8 reason phrase.
//
// RFC 8656 Section 18.10.
type AddressErrorCodeAttribute struct {
	Family AddressFamily
	Code   ErrorCode
	Reason []byte
}

func (c AddressErrorCodeAttribute) String() string {
	return fmt.Sprintf("%s %d: %s", c.Family, c.Code, c.Reason)
}

// AddTo adds ADDRESS-ERROR-CODE attribute to message.
func (c AddressErrorCodeAttribute) AddTo(m *Message) error {
	if c.Family != AddressFamilyIPv4 && c.Family != AddressFamilyIPv6 {
		return ErrBadAddressFamily
	}
	if c.Code < errorCodeMin || c.Code > errorCodeMax {
		return ErrBadErrorCode
	}
	if err := CheckOverflow(AttrAddressErrorCode,
		len(c.Reason)+errorCodeReasonStart,
		errorCodeReasonMaxB+errorCodeReasonStart,
	); err != nil {
		return err
	}
	value := make([]byte, 0, errorCodeReasonStart+len(c.Reason))
	numbers := uint16(c.Code) % errorCodeModulo //nolint:gosec // G115, error code number
	value = append(value,
		byte(c.Family),
		0, // reserved
		byte(c.Code/errorCodeModulo), // error class
		byte(numbers),
	)
	value = append(value, c.Reason...)
	m.Add(AttrAddressErrorCode, value)

	return nil
}

// GetFrom decodes ADDRESS-ERROR-CODE attribute from message. Reason is
// valid until m.Raw is valid.
func (c *AddressErrorCodeAttribute) GetFrom(m *Message) error {
	v, err := m.Get(AttrAddressErrorCode)
	if err != nil {
		return err
	}
	if len(v) < errorCodeReasonStart {
		return io.ErrUnexpectedEOF
	}
	family := AddressFamily(v[0])
	if family != AddressFamilyIPv4 && family != AddressFamilyIPv6 {
		return ErrBadAddressFamily
	}
	var (
		class  = uint16(v[errorCodeClassByte])
		number = uint16(v[errorCodeNumberByte])
		code   = int(class*errorCodeModulo + number)
	)
	c.Family = family
	c.Code = ErrorCode(code)
	c.Reason = v[errorCodeReasonStart:]

	return nil
}
