// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"errors"
	"fmt"
	"io"
)

// ErrorCodeAttribute represents ERROR-CODE attribute.
//
// RFC 5389 Section 15.6.
type ErrorCodeAttribute struct {
	Code   ErrorCode
	Reason []byte
}

func (c ErrorCodeAttribute) String() string {
	return fmt.Sprintf("%d: %s", c.Code, c.Reason)
}

// constants for ERROR-CODE encoding.
const (
	errorCodeReasonStart = 4
	errorCodeClassByte   = 2
	errorCodeNumberByte  = 3
	errorCodeReasonMaxB  = 763
	errorCodeModulo      = 100
	errorCodeMin         = 300
	errorCodeMax         = 699
)

// ErrBadErrorCode means that error code is out of the [300, 699] range.
var ErrBadErrorCode = errors.New("error code is out of range")

// AddTo adds ERROR-CODE to m.
func (c ErrorCodeAttribute) AddTo(m *Message) error {
	if c.Code < errorCodeMin || c.Code > errorCodeMax {
		return ErrBadErrorCode
	}
	value := make([]byte, 0, errorCodeReasonMaxB)
	if err := CheckOverflow(AttrErrorCode,
		len(c.Reason)+errorCodeReasonStart,
		errorCodeReasonMaxB+errorCodeReasonStart,
	); err != nil {
		return err
	}
	numbers := uint16(c.Code) % errorCodeModulo //nolint:gosec // G115, error code number
	value = append(value,
		0, 0, // reserved bytes
		byte(c.Code/errorCodeModulo), // error class
		byte(numbers),
	)
	value = append(value, c.Reason...)
	m.Add(AttrErrorCode, value)

	return nil
}

// GetFrom decodes ERROR-CODE from m. Reason is valid until m.Raw is valid.
func (c *ErrorCodeAttribute) GetFrom(m *Message) error {
	v, err := m.Get(AttrErrorCode)
	if err != nil {
		return err
	}
	if len(v) < errorCodeReasonStart {
		return io.ErrUnexpectedEOF
	}
	var (
		class  = uint16(v[errorCodeClassByte])
		number = uint16(v[errorCodeNumberByte])
		code   = int(class*errorCodeModulo + number)
	)
	c.Code = ErrorCode(code)
	c.Reason = v[errorCodeReasonStart:]

	return nil
}

// ErrorCode is code for ERROR-CODE attribute.
type ErrorCode int

// ErrNoDefaultReason means that default reason for provided error code
// is not defined in RFC.
var ErrNoDefaultReason = errors.New("no default reason for ErrorCode")

// AddTo adds ERROR-CODE with default reason to m. If there
// is no default reason, returns ErrNoDefaultReason.
func (c ErrorCode) AddTo(m *Message) error {
	reason := errorReasons[c]
	if reason == nil {
		return ErrNoDefaultReason
	}
	a := &ErrorCodeAttribute{
		Code:   c,
		Reason: reason,
	}

	return a.AddTo(m)
}

// Possible error codes.
const (
	// CodeTryAlternate is error code for TRY-ALTERNATE error.
	CodeTryAlternate ErrorCode = 300
	// CodeBadRequest is error code for BAD-REQUEST error.
	CodeBadRequest ErrorCode = 400
	// CodeUnauthorized is error code for UNAUTHORIZED error.
	CodeUnauthorized ErrorCode = 401
	// CodeUnknownAttribute is error code for UNKNOWN-ATTRIBUTE error.
	CodeUnknownAttribute ErrorCode = 420
	// CodeStaleNonce is error code for STALE-NONCE error.
	CodeStaleNonce ErrorCode = 438
	// CodeRoleConflict is error code for ROLE-CONFLICT error.
	CodeRoleConflict ErrorCode = 487
	// CodeServerError is error code for SERVER-ERROR error.
	CodeServerError ErrorCode = 500
)

// Error codes from RFC 5766.
//
// RFC 5766 Section 15.
const (
	CodeForbidden             ErrorCode = 403 // Forbidden
	CodeAllocMismatch         ErrorCode = 437 // Allocation Mismatch
	CodeWrongCredentials      ErrorCode = 441 // Wrong Credentials
	CodeUnsupportedTransProto ErrorCode = 442 // Unsupported Transport Protocol
	CodeAllocQuotaReached     ErrorCode = 486 // Allocation Quota Reached
	CodeInsufficientCapacity  ErrorCode = 508 // Insufficient Capacity
)

// Error codes from RFC 8656.
//
// RFC 8656 Section 19.
const (
	CodeAddrFamilyNotSupported ErrorCode = 440 // Address Family not Supported
	CodePeerAddrFamilyMismatch ErrorCode = 443 // Peer Address Family Mismatch
)

var errorReasons = map[ErrorCode][]byte{ //nolint:gochecknoglobals
	CodeTryAlternate:     []byte("Try Alternate"),
	CodeBadRequest:       []byte("Bad Request"),
	CodeUnauthorized:     []byte("Unauthorized"),
	CodeUnknownAttribute: []byte("Unknown Attribute"),
	CodeStaleNonce:       []byte("Stale Nonce"),
	CodeServerError:      []byte("Server Error"),
	CodeRoleConflict:     []byte("role conflict"),

	// RFC 5766.
	CodeForbidden:             []byte("Forbidden"),
	CodeAllocMismatch:         []byte("Allocation Mismatch"),
	CodeWrongCredentials:      []byte("Wrong Credentials"),
	CodeUnsupportedTransProto: []byte("Unsupported Transport Protocol"),
	CodeAllocQuotaReached:     []byte("Allocation Quota Reached"),
	CodeInsufficientCapacity:  []byte("Insufficient Capacity"),

	// RFC 8656.
	CodeAddrFamilyNotSupported: []byte("Address Family not Supported"),
	CodePeerAddrFamilyMismatch: []byte("Peer Address Family Mismatch"),
}
