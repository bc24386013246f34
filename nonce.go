// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"unicode/utf8"
)

// NonceSecurityFeatures is the 24-bit security feature set advertised
// inside an RFC 8489 nonce cookie.
type NonceSecurityFeatures uint32

// Security feature bits.
//
// RFC 8489 Section 18.1.
const (
	// FeaturePasswordAlgorithms signals that the PASSWORD-ALGORITHMS
	// attribute is understood.
	FeaturePasswordAlgorithms NonceSecurityFeatures = 1 << 0
	// FeatureUsernameAnonymity signals that the USERHASH attribute is
	// understood.
	FeatureUsernameAnonymity NonceSecurityFeatures = 1 << 1

	maxNonceSecurityFeatures = 1<<24 - 1
)

// nonceCookiePrefix is the fixed start of an RFC 8489 nonce cookie,
// followed by 4 base64 bytes encoding the security feature set.
const nonceCookiePrefix = "obMatJos2"

const nonceCookieLen = len(nonceCookiePrefix) + 4

// ErrNonceLengthInvalid means that requested nonce length cannot hold
// the RFC 8489 nonce cookie plus at least one random byte.
var ErrNonceLengthInvalid = errors.New("invalid nonce length")

// ErrNonceFeaturesInvalid means that the security feature set does not
// fit into 24 bits.
var ErrNonceFeaturesInvalid = errors.New("security features exceed 24 bits")

// NewSecureNonce returns a Nonce of exactly length bytes starting with
// the RFC 8489 nonce cookie for the given security feature set and
// ending with a random suffix. The result is valid quoted-string
// content.
func NewSecureNonce(length int, features NonceSecurityFeatures) (Nonce, error) {
	if length <= nonceCookieLen || length > maxNonceB {
		return nil, ErrNonceLengthInvalid
	}
	if features > maxNonceSecurityFeatures {
		return nil, ErrNonceFeaturesInvalid
	}
	n := make(Nonce, length)
	copy(n, nonceCookiePrefix)

	var feat [3]byte
	feat[0] = byte(features >> 16)
	feat[1] = byte(features >> 8)
	feat[2] = byte(features)
	base64.StdEncoding.Encode(n[len(nonceCookiePrefix):nonceCookieLen], feat[:])

	if err := fillNonceSuffix(n[nonceCookieLen:]); err != nil {
		return nil, err
	}

	return n, nil
}

// fillNonceSuffix fills dst with random code points from the basic
// multilingual plane that are valid qdtext, encoded as UTF-8.
func fillNonceSuffix(dst []byte) error {
	var buf [2]byte
	for i := 0; i < len(dst); {
		if _, err := rand.Read(buf[:]); err != nil {
			return err
		}
		r := rune(bin.Uint16(buf[:]))
		if utf8.RuneLen(r) > len(dst)-i {
			// Not enough room left for a multi-byte sequence,
			// degrade to the ASCII range.
			r = rune(buf[0] & 0x7F)
		}
		if !utf8.ValidRune(r) {
			continue // surrogate range
		}
		if r <= 0x7F && !isQdtextChar(byte(r)) {
			continue
		}
		if r <= 0x7F && (r == ' ' || r == '\t' || r == '\r' || r == '\n') {
			// LWS is grammatically valid but useless in a nonce.
			continue
		}
		i += utf8.EncodeRune(dst[i:], r)
	}

	return nil
}

// ParseNonceSecurityFeatures decodes the security feature set from an
// RFC 8489 nonce. Returns false when the nonce does not carry the nonce
// cookie.
func ParseNonceSecurityFeatures(n Nonce) (NonceSecurityFeatures, bool) {
	if len(n) < nonceCookieLen {
		return 0, false
	}
	if string(n[:len(nonceCookiePrefix)]) != nonceCookiePrefix {
		return 0, false
	}
	var feat [3]byte
	if _, err := base64.StdEncoding.Decode(feat[:], n[len(nonceCookiePrefix):nonceCookieLen]); err != nil {
		return 0, false
	}
	f := NonceSecurityFeatures(feat[0])<<16 | NonceSecurityFeatures(feat[1])<<8 | NonceSecurityFeatures(feat[2])

	return f, true
}
