// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import "unicode/utf8"

const (
	maxUsernameB        = 513
	maxRealmB           = 763
	maxSoftwareB        = 763
	maxNonceB           = 763
	maxAlternateDomainB = 763
)

// Username represents USERNAME attribute.
//
// RFC 5389 Section 15.3.
type Username []byte

// NewUsername returns new Username from string.
func NewUsername(username string) Username {
	return Username(username)
}

func (u Username) String() string {
	return string(u)
}

// AddTo adds USERNAME attribute to message. The value must be a valid
// UTF-8 sequence of at most 513 bytes.
func (u Username) AddTo(m *Message) error {
	if !utf8.Valid(u) {
		return ErrBadUTF8
	}

	return TextAttribute(u).AddToAs(m, AttrUsername, maxUsernameB)
}

// GetFrom gets USERNAME from message.
func (u *Username) GetFrom(m *Message) error {
	return (*TextAttribute)(u).GetFromAs(m, AttrUsername)
}

// Realm represents REALM attribute.
//
// RFC 5389 Section 15.7.
type Realm []byte

// NewRealm returns Realm with provided value.
// Must be SASL-prepared.
func NewRealm(realm string) Realm {
	return Realm(realm)
}

func (n Realm) String() string {
	return string(n)
}

// AddTo adds REALM to message. The value must be valid quoted-string
// content of at most 763 bytes.
func (n Realm) AddTo(m *Message) error {
	if err := CheckOverflow(AttrRealm, len(n), maxRealmB); err != nil {
		return err
	}
	if !IsQuotedStringContent(n) {
		return ErrBadQuotedString
	}
	m.Add(AttrRealm, n)

	return nil
}

// GetFrom gets REALM from message.
func (n *Realm) GetFrom(m *Message) error {
	return (*TextAttribute)(n).GetFromAs(m, AttrRealm)
}

// Nonce represents NONCE attribute.
//
// RFC 5389 Section 15.8.
type Nonce []byte

// NewNonce returns new Nonce from string.
func NewNonce(nonce string) Nonce {
	return Nonce(nonce)
}

func (n Nonce) String() string {
	return string(n)
}

// AddTo adds NONCE to message. The value must be valid quoted-string
// content of at most 763 bytes.
func (n Nonce) AddTo(m *Message) error {
	if err := CheckOverflow(AttrNonce, len(n), maxNonceB); err != nil {
		return err
	}
	if !IsQuotedStringContent(n) {
		return ErrBadQuotedString
	}
	m.Add(AttrNonce, n)

	return nil
}

// GetFrom gets NONCE from message.
func (n *Nonce) GetFrom(m *Message) error {
	return (*TextAttribute)(n).GetFromAs(m, AttrNonce)
}

// Software is SOFTWARE attribute.
//
// RFC 5389 Section 15.10.
type Software []byte

func (s Software) String() string {
	return string(s)
}

// NewSoftware returns *Software from string.
func NewSoftware(software string) Software {
	return Software(software)
}

// AddTo adds Software attribute to m. The value must be a valid UTF-8
// sequence of at most 763 bytes.
func (s Software) AddTo(m *Message) error {
	if !utf8.Valid(s) {
		return ErrBadUTF8
	}

	return TextAttribute(s).AddToAs(m, AttrSoftware, maxSoftwareB)
}

// GetFrom decodes Software from m.
func (s *Software) GetFrom(m *Message) error {
	return (*TextAttribute)(s).GetFromAs(m, AttrSoftware)
}

// AlternateDomain represents ALTERNATE-DOMAIN attribute.
//
// RFC 8489 Section 14.16.
type AlternateDomain []byte

// NewAlternateDomain returns new AlternateDomain from string.
func NewAlternateDomain(domain string) AlternateDomain {
	return AlternateDomain(domain)
}

func (d AlternateDomain) String() string {
	return string(d)
}

// AddTo adds ALTERNATE-DOMAIN attribute to m.
func (d AlternateDomain) AddTo(m *Message) error {
	if !utf8.Valid(d) {
		return ErrBadUTF8
	}

	return TextAttribute(d).AddToAs(m, AttrAlternateDomain, maxAlternateDomainB)
}

// GetFrom decodes ALTERNATE-DOMAIN from m.
func (d *AlternateDomain) GetFrom(m *Message) error {
	return (*TextAttribute)(d).GetFromAs(m, AttrAlternateDomain)
}

// TextAttribute is helper for adding and getting text attributes.
type TextAttribute []byte

// AddToAs adds attribute with type t to m, checking maximum length. If
// maxLen is less than 0, no check is performed.
func (v TextAttribute) AddToAs(m *Message, t AttrType, maxLen int) error {
	if maxLen >= 0 {
		if err := CheckOverflow(t, len(v), maxLen); err != nil {
			return err
		}
	}
	m.Add(t, v)

	return nil
}

// GetFromAs gets t attribute from m and sets v to the value view. The
// result is valid until m.Raw is valid.
func (v *TextAttribute) GetFromAs(m *Message, t AttrType) error {
	attr, err := m.Get(t)
	if err != nil {
		return err
	}
	*v = attr

	return nil
}
