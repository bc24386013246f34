// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"errors"
	"fmt"
	"strings"

	"github.com/relaykit/stun/internal/hmac"
)

// separator for credentials.
const credentialsSep = ":"

// NewLongTermIntegrity returns new MessageIntegrity with key for long-term
// credentials. Password, username, and realm must be SASL-prepared.
func NewLongTermIntegrity(username, realm, password string) MessageIntegrity {
	k := strings.Join([]string{username, realm, password}, credentialsSep)
	h := md5.New()   //nolint:gosec
	fmt.Fprint(h, k) //nolint:errcheck,gosec

	return MessageIntegrity(h.Sum(nil))
}

// NewShortTermIntegrity returns new MessageIntegrity with key for short-term
// credentials. Password must be SASL-prepared.
func NewShortTermIntegrity(password string) MessageIntegrity {
	return MessageIntegrity(password)
}

// MessageIntegrity represents MESSAGE-INTEGRITY attribute.
//
// AddTo and Check methods are using zero-allocation version of hmac, see
// newHMAC function and internal/hmac/pool.go.
//
// RFC 5389 Section 15.4.
type MessageIntegrity []byte

func newHMAC(key, message, buf []byte) []byte {
	mac := hmac.AcquireSHA1(key)
	writeOrPanic(mac, message)
	defer hmac.PutSHA1(mac)

	return mac.Sum(buf)
}

func (i MessageIntegrity) String() string {
	return fmt.Sprintf("KEY: 0x%x", []byte(i))
}

const messageIntegritySize = 20

// ErrFingerprintBeforeIntegrity means that FINGERPRINT attribute is already in
// message, so MESSAGE-INTEGRITY attribute cannot be added.
var ErrFingerprintBeforeIntegrity = errors.New("FINGERPRINT before MESSAGE-INTEGRITY attribute")

// AddTo adds MESSAGE-INTEGRITY attribute to message.
//
// The message-length header field is rewritten to include the
// MESSAGE-INTEGRITY TLV while the HMAC is computed, then restored, so
// the digest covers the exact prefix that will be on the wire.
//
// CPU costly, see BenchmarkMessageIntegrity_AddTo.
func (i MessageIntegrity) AddTo(m *Message) error {
	for _, a := range m.Attributes {
		// Message should not contain FINGERPRINT attribute
		// before MESSAGE-INTEGRITY.
		if a.Type == AttrFingerprint {
			return ErrFingerprintBeforeIntegrity
		}
	}
	// The text used as input to HMAC is the STUN message,
	// including the header, up to and including the attribute preceding the
	// MESSAGE-INTEGRITY attribute.
	length := m.Length
	// Adjusting m.Length to contain MESSAGE-INTEGRITY TLV.
	m.Length += messageIntegritySize + attributeHeaderSize
	m.WriteLength()                              // writing length to m.Raw
	v := newHMAC(i, m.Raw, m.Raw[len(m.Raw):])   // calculating HMAC for adjusted m.Raw
	m.Length = length                            // changing m.Length back
	m.WriteLength()                              // restoring length in m.Raw

	// Copy hmac value to temporary variable to protect it from resetting
	// while processing m.Add call.
	vBuf := make([]byte, sha1.Size)
	copy(vBuf, v)

	m.Add(AttrMessageIntegrity, vBuf)

	return nil
}

// ErrIntegrityMismatch means that computed HMAC differs from expected.
var ErrIntegrityMismatch = errors.New("integrity check failed")

// ErrAttributeAfterIntegrity means that there is an attribute that is not
// a single FINGERPRINT after the integrity attribute being checked,
// violating the protection ordering.
var ErrAttributeAfterIntegrity = errors.New("attribute after MESSAGE-INTEGRITY")

// integrityTrailer verifies that only a single trailing FINGERPRINT
// follows the integrity attribute of type t inside msg and returns the
// number of value bytes the trailing attributes occupy on the wire.
// On an ordering violation the attribute views after the integrity
// attribute are dropped from msg so they cannot be treated as
// present-and-trusted.
func integrityTrailer(msg *Message, t AttrType) (int, error) {
	var (
		afterIntegrity   bool
		afterFingerprint bool
		sizeReduced      int
	)
	for idx, a := range msg.Attributes {
		if afterIntegrity {
			if a.Type != AttrFingerprint || afterFingerprint {
				msg.Attributes = msg.Attributes[:idx]

				return 0, ErrAttributeAfterIntegrity
			}
			afterFingerprint = true
			sizeReduced += nearestPaddedValueLength(int(a.Length))
			sizeReduced += attributeHeaderSize
		}
		if a.Type == t {
			afterIntegrity = true
		}
	}

	return sizeReduced, nil
}

// Check checks MESSAGE-INTEGRITY attribute.
//
// The message-length header field is temporarily rewritten to the value
// it had when the HMAC was computed and is restored on every exit path.
//
// CPU costly, see BenchmarkMessageIntegrity_Check.
func (i MessageIntegrity) Check(m *Message) error {
	val, err := m.Get(AttrMessageIntegrity)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrMessageIntegrity, len(val), messageIntegritySize); err != nil {
		return err
	}
	// Adjusting length in header to match m.Raw that was
	// used when computing HMAC.
	sizeReduced, err := integrityTrailer(m, AttrMessageIntegrity)
	if err != nil {
		return err
	}
	length := m.Length
	m.Length -= uint32(sizeReduced) //nolint:gosec // G115
	m.WriteLength()
	// startOfHMAC should be first byte of integrity attribute.
	startOfHMAC := messageHeaderSize + m.Length - (attributeHeaderSize + messageIntegritySize)
	b := m.Raw[:startOfHMAC] // data before integrity attribute
	expected := newHMAC(i, b, m.Raw[len(m.Raw):])
	m.Length = length
	m.WriteLength() // writing length back

	return checkHMAC(val, expected)
}
