// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import "errors"

// Builders for complete STUN and TURN messages. The binding builders
// write attributes in the canonical order: application attributes first,
// then MESSAGE-INTEGRITY, then FINGERPRINT. The TURN builders write their
// own attributes first and then append any extra setters in the order
// given; they do not reorder them.

// ErrNoIntegrityKey means that an integrity-protected message was
// requested without a key.
var ErrNoIntegrityKey = errors.New("integrity key is empty")

// ErrNoPeerAddress means that a TURN message which requires at least
// one XOR-PEER-ADDRESS was requested without one.
var ErrNoPeerAddress = errors.New("no peer address provided")

// BindingCredentials are the optional credential attributes of a
// binding request. Zero value means an unauthenticated request.
type BindingCredentials struct {
	Username Username
	Realm    Realm
	Nonce    Nonce
	// Key protects the message with MESSAGE-INTEGRITY when non-nil.
	Key MessageIntegrity
}

// NewBindingRequest returns a binding request with the given
// transaction id, optional SOFTWARE, optional credentials and optional
// FINGERPRINT. Attribute order is username, realm, nonce, software,
// message-integrity, fingerprint.
func NewBindingRequest(
	id [TransactionIDSize]byte,
	software Software,
	creds BindingCredentials,
	fingerprint bool,
) (*Message, error) {
	setters := make([]Setter, 0, 8)
	setters = append(setters, BindingRequest, NewTransactionIDSetter(id))
	if creds.Username != nil {
		setters = append(setters, creds.Username)
	}
	if creds.Realm != nil {
		setters = append(setters, creds.Realm)
	}
	if creds.Nonce != nil {
		setters = append(setters, creds.Nonce)
	}
	if software != nil {
		setters = append(setters, software)
	}
	if creds.Key != nil {
		setters = append(setters, creds.Key)
	}
	if fingerprint {
		setters = append(setters, Fingerprint)
	}

	return Build(setters...)
}

// NewPlainBindingRequest returns a binding request without credentials.
func NewPlainBindingRequest(
	id [TransactionIDSize]byte, software Software, fingerprint bool,
) (*Message, error) {
	return NewBindingRequest(id, software, BindingCredentials{}, fingerprint)
}

// NewShortTermBindingRequest returns a binding request protected with
// short-term credentials.
func NewShortTermBindingRequest(
	id [TransactionIDSize]byte,
	software Software,
	username Username,
	key MessageIntegrity,
	fingerprint bool,
) (*Message, error) {
	if len(username) == 0 {
		return nil, ErrAttributeNotFound
	}
	if len(key) == 0 {
		return nil, ErrNoIntegrityKey
	}

	return NewBindingRequest(id, software, BindingCredentials{
		Username: username,
		Key:      key,
	}, fingerprint)
}

// NewLongTermBindingRequest returns a binding request protected with
// long-term credentials. The key should be derived with
// NewLongTermIntegrity.
func NewLongTermBindingRequest(
	id [TransactionIDSize]byte,
	software Software,
	username Username,
	realm Realm,
	nonce Nonce,
	key MessageIntegrity,
	fingerprint bool,
) (*Message, error) {
	if len(username) == 0 || len(realm) == 0 || len(nonce) == 0 {
		return nil, ErrAttributeNotFound
	}
	if len(key) == 0 {
		return nil, ErrNoIntegrityKey
	}

	return NewBindingRequest(id, software, BindingCredentials{
		Username: username,
		Realm:    realm,
		Nonce:    nonce,
		Key:      key,
	}, fingerprint)
}

// NewErrorResponse builds an error response for req, preserving its
// method and transaction id.
func NewErrorResponse(req *Message, code ErrorCode, reason []byte) (*Message, error) {
	if reason == nil {
		reason = errorReasons[code]
	}

	return Build(
		NewTransactionIDSetter(req.TransactionID),
		NewType(req.Type.Method, ClassErrorResponse),
		ErrorCodeAttribute{Code: code, Reason: reason},
	)
}

// NewCreatePermissionRequest returns a TURN CreatePermission request
// installing permissions for the given peers. At least one peer is
// required.
//
// RFC 5766 Section 9.1.
func NewCreatePermissionRequest(
	id [TransactionIDSize]byte, peers []XORPeerAddress, extra ...Setter,
) (*Message, error) {
	if len(peers) == 0 {
		return nil, ErrNoPeerAddress
	}
	setters := make([]Setter, 0, len(peers)+len(extra)+2)
	setters = append(setters, CreatePermissionRequest, NewTransactionIDSetter(id))
	for _, p := range peers {
		setters = append(setters, p)
	}
	setters = append(setters, extra...)

	return Build(setters...)
}

// NewSendIndication returns a TURN Send indication carrying data for
// peer.
//
// RFC 5766 Section 10.1.
func NewSendIndication(
	id [TransactionIDSize]byte, peer XORPeerAddress, data Data,
) (*Message, error) {
	return Build(
		SendIndication,
		NewTransactionIDSetter(id),
		peer,
		data,
	)
}

// NewDataIndication returns a TURN Data indication carrying data
// received from peer.
//
// RFC 5766 Section 10.4.
func NewDataIndication(
	id [TransactionIDSize]byte, peer XORPeerAddress, data Data,
) (*Message, error) {
	return Build(
		DataIndication,
		NewTransactionIDSetter(id),
		peer,
		data,
	)
}

// NewChannelBindRequest returns a TURN ChannelBind request binding
// number to peer.
//
// RFC 5766 Section 11.1.
func NewChannelBindRequest(
	id [TransactionIDSize]byte, number ChannelNumber, peer XORPeerAddress, extra ...Setter,
) (*Message, error) {
	setters := make([]Setter, 0, len(extra)+4)
	setters = append(setters, ChannelBindRequest, NewTransactionIDSetter(id), number, peer)
	setters = append(setters, extra...)

	return Build(setters...)
}
