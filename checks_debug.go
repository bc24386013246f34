// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

//go:build debug
// +build debug

package stun

import (
	"errors"
	"fmt"

	"github.com/relaykit/stun/internal/hmac"
)

// CheckSize returns *AttrLengthErr if got is not equal to expected.
func CheckSize(attrType AttrType, got, expected int) error {
	if got == expected {
		return nil
	}

	return &AttrLengthErr{
		Got:      got,
		Expected: expected,
		Attr:     attrType,
	}
}

func checkHMAC(got, expected []byte) error {
	if hmac.Equal(got, expected) {
		return nil
	}

	return &IntegrityErr{
		Expected: expected,
		Actual:   got,
	}
}

func checkFingerprint(got, expected uint32) error {
	if got == expected {
		return nil
	}

	return &CRCMismatch{
		Actual:   got,
		Expected: expected,
	}
}

// IsAttrSizeInvalid returns true if error means that attribute size is invalid.
func IsAttrSizeInvalid(err error) bool {
	var lengthErr *AttrLengthErr

	return errors.As(err, &lengthErr)
}

// AttrOverflowErr occurs when len(v) > Max.
type AttrOverflowErr struct {
	Type AttrType
	Got  int
	Max  int
}

func (e AttrOverflowErr) Error() string {
	return fmt.Sprintf("incorrect length of %s attribute: %d exceeds maximum %d",
		e.Type, e.Got, e.Max,
	)
}

// CheckOverflow returns *AttrOverflowErr if got is bigger that max.
func CheckOverflow(attrType AttrType, got, max int) error {
	if got <= max {
		return nil
	}

	return &AttrOverflowErr{
		Type: attrType,
		Got:  got,
		Max:  max,
	}
}

// IsAttrSizeOverflow returns true if error means that attribute size is too big.
func IsAttrSizeOverflow(err error) bool {
	var overflowErr *AttrOverflowErr

	return errors.As(err, &overflowErr)
}
