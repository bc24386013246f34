// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/relaykit/stun/internal/hmac"
)

// NewLongTermIntegritySHA256 returns new MessageIntegritySHA256 with key
// for long-term credentials, derived with the SHA-256 password
// algorithm. Password, username, and realm must be SASL-prepared.
//
// RFC 8489 Section 18.5.1.
func NewLongTermIntegritySHA256(username, realm, password string) MessageIntegritySHA256 {
	k := strings.Join([]string{username, realm, password}, credentialsSep)
	h := sha256.New()
	fmt.Fprint(h, k) //nolint:errcheck,gosec

	return MessageIntegritySHA256(h.Sum(nil))
}

// NewShortTermIntegritySHA256 returns new MessageIntegritySHA256 with
// key for short-term credentials. Password must be SASL-prepared.
func NewShortTermIntegritySHA256(password string) MessageIntegritySHA256 {
	return MessageIntegritySHA256(password)
}

// MessageIntegritySHA256 represents MESSAGE-INTEGRITY-SHA256 attribute.
//
// The HMAC is always the full 32 bytes; truncated values are rejected.
//
// RFC 8489 Section 14.6.
type MessageIntegritySHA256 []byte

func newHMACSHA256(key, message, buf []byte) []byte {
	mac := hmac.AcquireSHA256(key)
	writeOrPanic(mac, message)
	defer hmac.PutSHA256(mac)

	return mac.Sum(buf)
}

func (i MessageIntegritySHA256) String() string {
	return fmt.Sprintf("KEY: 0x%x", []byte(i))
}

const messageIntegritySHA256Size = 32

// AddTo adds MESSAGE-INTEGRITY-SHA256 attribute to message.
//
// Same transient message-length rewrite as MessageIntegrity.AddTo, with
// the 32-byte digest size.
func (i MessageIntegritySHA256) AddTo(m *Message) error {
	for _, a := range m.Attributes {
		// Message should not contain FINGERPRINT attribute
		// before MESSAGE-INTEGRITY-SHA256.
		if a.Type == AttrFingerprint {
			return ErrFingerprintBeforeIntegrity
		}
	}
	length := m.Length
	// Adjusting m.Length to contain MESSAGE-INTEGRITY-SHA256 TLV.
	m.Length += messageIntegritySHA256Size + attributeHeaderSize
	m.WriteLength()
	v := newHMACSHA256(i, m.Raw, m.Raw[len(m.Raw):])
	m.Length = length
	m.WriteLength()

	// Copy hmac value to temporary variable to protect it from resetting
	// while processing m.Add call.
	vBuf := make([]byte, sha256.Size)
	copy(vBuf, v)

	m.Add(AttrMessageIntegritySHA256, vBuf)

	return nil
}

// Check checks MESSAGE-INTEGRITY-SHA256 attribute.
//
// The message-length header field is temporarily rewritten to the value
// it had when the HMAC was computed and is restored on every exit path.
func (i MessageIntegritySHA256) Check(m *Message) error {
	val, err := m.Get(AttrMessageIntegritySHA256)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrMessageIntegritySHA256, len(val), messageIntegritySHA256Size); err != nil {
		return err
	}
	sizeReduced, err := integrityTrailer(m, AttrMessageIntegritySHA256)
	if err != nil {
		return err
	}
	length := m.Length
	m.Length -= uint32(sizeReduced) //nolint:gosec // G115
	m.WriteLength()
	// startOfHMAC should be first byte of integrity attribute.
	startOfHMAC := messageHeaderSize + m.Length - (attributeHeaderSize + messageIntegritySHA256Size)
	b := m.Raw[:startOfHMAC] // data before integrity attribute
	expected := newHMACSHA256(i, b, m.Raw[len(m.Raw):])
	m.Length = length
	m.WriteLength() // writing length back

	return checkHMAC(val, expected)
}
