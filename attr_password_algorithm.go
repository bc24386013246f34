// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"errors"
	"io"
	"strconv"
)

// PasswordAlgorithm is a long-term credential key derivation algorithm
// number.
//
// RFC 8489 Section 18.5.
type PasswordAlgorithm uint16

// Password algorithms from the IANA "Password Algorithms" registry.
const (
	// PasswordAlgorithmMD5 derives the key with MD5, as in RFC 5389.
	PasswordAlgorithmMD5 PasswordAlgorithm = 0x0001
	// PasswordAlgorithmSHA256 derives the key with SHA-256.
	PasswordAlgorithmSHA256 PasswordAlgorithm = 0x0002
)

func (a PasswordAlgorithm) String() string {
	switch a {
	case PasswordAlgorithmMD5:
		return "MD5"
	case PasswordAlgorithmSHA256:
		return "SHA-256"
	default:
		return "0x" + strconv.FormatUint(uint64(a), 16)
	}
}

// passwordAlgorithmHeaderSize is algorithm number plus parameters
// length, both 16 bit.
const passwordAlgorithmHeaderSize = 4

// PasswordAlgorithmAttr represents PASSWORD-ALGORITHM attribute. The
// defined algorithms take no parameters.
//
// RFC 8489 Section 14.12.
type PasswordAlgorithmAttr struct {
	Algorithm  PasswordAlgorithm
	Parameters []byte
}

func encodePasswordAlgorithm(v []byte, a PasswordAlgorithmAttr) []byte {
	var hdr [passwordAlgorithmHeaderSize]byte
	bin.PutUint16(hdr[0:2], uint16(a.Algorithm))
	bin.PutUint16(hdr[2:4], uint16(len(a.Parameters))) //nolint:gosec // G115
	v = append(v, hdr[:]...)
	v = append(v, a.Parameters...)
	// Parameters are padded to a 4-byte boundary inside the value.
	for len(v)%padding != 0 {
		v = append(v, 0)
	}

	return v
}

// AddTo adds PASSWORD-ALGORITHM attribute to message.
func (a PasswordAlgorithmAttr) AddTo(m *Message) error {
	m.Add(AttrPasswordAlgorithm, encodePasswordAlgorithm(nil, a))

	return nil
}

// GetFrom decodes PASSWORD-ALGORITHM attribute from message.
func (a *PasswordAlgorithmAttr) GetFrom(m *Message) error {
	v, err := m.Get(AttrPasswordAlgorithm)
	if err != nil {
		return err
	}
	if len(v) < passwordAlgorithmHeaderSize {
		return io.ErrUnexpectedEOF
	}
	paramLen := int(bin.Uint16(v[2:4]))
	if len(v) < passwordAlgorithmHeaderSize+paramLen {
		return io.ErrUnexpectedEOF
	}
	a.Algorithm = PasswordAlgorithm(bin.Uint16(v[0:2]))
	a.Parameters = v[passwordAlgorithmHeaderSize : passwordAlgorithmHeaderSize+paramLen]

	return nil
}

// PasswordAlgorithms represents PASSWORD-ALGORITHMS attribute: the list
// of algorithms the server supports, in order of preference.
//
// RFC 8489 Section 14.11.
type PasswordAlgorithms []PasswordAlgorithmAttr

// ErrBadPasswordAlgorithms means that PASSWORD-ALGORITHMS value is
// malformed.
var ErrBadPasswordAlgorithms = errors.New("bad PASSWORD-ALGORITHMS value")

// AddTo adds PASSWORD-ALGORITHMS attribute to message.
func (a PasswordAlgorithms) AddTo(m *Message) error {
	var v []byte
	for _, alg := range a {
		v = encodePasswordAlgorithm(v, alg)
	}
	m.Add(AttrPasswordAlgorithms, v)

	return nil
}

// GetFrom decodes PASSWORD-ALGORITHMS attribute from message.
func (a *PasswordAlgorithms) GetFrom(m *Message) error {
	v, err := m.Get(AttrPasswordAlgorithms)
	if err != nil {
		return err
	}
	*a = (*a)[:0]
	for len(v) > 0 {
		if len(v) < passwordAlgorithmHeaderSize {
			return ErrBadPasswordAlgorithms
		}
		paramLen := int(bin.Uint16(v[2:4]))
		paddedEnd := passwordAlgorithmHeaderSize + nearestPaddedValueLength(paramLen)
		if len(v) < passwordAlgorithmHeaderSize+paramLen {
			return ErrBadPasswordAlgorithms
		}
		*a = append(*a, PasswordAlgorithmAttr{
			Algorithm:  PasswordAlgorithm(bin.Uint16(v[0:2])),
			Parameters: v[passwordAlgorithmHeaderSize : passwordAlgorithmHeaderSize+paramLen],
		})
		if len(v) < paddedEnd {
			// Trailing element whose padding was consumed by the
			// attribute padding.
			break
		}
		v = v[paddedEnd:]
	}

	return nil
}
