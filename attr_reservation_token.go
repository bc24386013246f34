// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

// ReservationToken represents RESERVATION-TOKEN attribute.
//
// The 8-byte value uniquely identifies a relayed transport address
// being held in reserve by the server.
//
// RFC 5766 Section 14.9.
type ReservationToken []byte

const reservationTokenSize = 8 // 8 bytes

// AddTo adds RESERVATION-TOKEN attribute to message.
func (t ReservationToken) AddTo(m *Message) error {
	if err := CheckSize(AttrReservationToken, len(t), reservationTokenSize); err != nil {
		return err
	}
	m.Add(AttrReservationToken, t)

	return nil
}

// GetFrom decodes RESERVATION-TOKEN attribute from message.
func (t *ReservationToken) GetFrom(m *Message) error {
	v, err := m.Get(AttrReservationToken)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrReservationToken, len(v), reservationTokenSize); err != nil {
		return err
	}
	*t = v

	return nil
}
