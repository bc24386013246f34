// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageIntegrity_AddTo(t *testing.T) {
	key := NewShortTermIntegrity("password")
	m := MustBuild(TransactionID, BindingRequest, NewUsername("user"), key)

	decoded := new(Message)
	_, err := decoded.Write(m.Raw)
	assert.NoError(t, err)
	assert.NoError(t, key.Check(decoded))
}

func TestMessageIntegrity_Keys(t *testing.T) {
	key := NewShortTermIntegrity("key")
	m := MustBuild(NewTransactionIDSetter(testTransactionID), BindingRequest,
		NewUsername("username"), NewSoftware("software"), key, Fingerprint,
	)

	// verify(build(m, key), key) = true.
	assert.NoError(t, key.Check(m))
	// verify(build(m, key), key') = false for key' != key.
	assert.ErrorIs(t, NewShortTermIntegrity("ke").Check(m), ErrIntegrityMismatch)
	assert.ErrorIs(t, NewShortTermIntegrity("other").Check(m), ErrIntegrityMismatch)
}

func TestMessageIntegrity_Tamper(t *testing.T) {
	key := NewShortTermIntegrity("password")
	m := MustBuild(TransactionID, BindingRequest, NewSoftware("software"), key)

	// Any byte flip before the integrity attribute fails verification.
	for i := 0; i < messageHeaderSize+4; i++ {
		tampered := new(Message)
		_, err := tampered.Write(m.Raw)
		assert.NoError(t, err)
		tampered.Raw[i] ^= 0x40
		if tampered.Decode() != nil {
			continue // header corruption may fail decoding instead
		}
		assert.Error(t, key.Check(tampered), "flip at %d must not verify", i)
	}
}

// The message-length header field must be restored on both the success
// and the failure path of Check.
func TestMessageIntegrity_LengthRestore(t *testing.T) {
	key := NewShortTermIntegrity("password")
	m := MustBuild(TransactionID, BindingRequest, NewSoftware("software"), key, Fingerprint)
	raw := append([]byte(nil), m.Raw...)

	assert.NoError(t, key.Check(m))
	assert.Equal(t, raw, m.Raw, "success path must restore the length field")

	assert.Error(t, NewShortTermIntegrity("bad").Check(m))
	assert.Equal(t, raw, m.Raw, "failure path must restore the length field")
}

func TestMessageIntegrity_AfterFingerprint(t *testing.T) {
	m := MustBuild(TransactionID, BindingRequest, Fingerprint)
	assert.ErrorIs(t, NewShortTermIntegrity("pwd").AddTo(m), ErrFingerprintBeforeIntegrity)
}

// A non-FINGERPRINT attribute after MESSAGE-INTEGRITY fails
// verification and the trailing attribute views are dropped.
func TestMessageIntegrity_TrailingAttribute(t *testing.T) {
	key := NewShortTermIntegrity("password")
	m := MustBuild(TransactionID, BindingRequest, NewSoftware("software"), key)
	m.Add(AttrData, []byte{1, 2, 3, 4})
	assert.Len(t, m.Attributes, 3)

	assert.ErrorIs(t, key.Check(m), ErrAttributeAfterIntegrity)
	assert.Len(t, m.Attributes, 2, "attribute views after integrity must be dropped")
	assert.False(t, m.Contains(AttrData))
}

func TestMessageIntegrity_TrailingFingerprintOK(t *testing.T) {
	key := NewShortTermIntegrity("password")
	m := MustBuild(TransactionID, BindingRequest, NewSoftware("software"), key, Fingerprint)
	assert.NoError(t, key.Check(m))
	assert.NoError(t, Fingerprint.Check(m))
}

func TestMessageIntegrity_NotFound(t *testing.T) {
	m := MustBuild(TransactionID, BindingRequest)
	assert.ErrorIs(t, NewShortTermIntegrity("pwd").Check(m), ErrAttributeNotFound)
}

func TestMessageIntegrity_BadSize(t *testing.T) {
	m := MustBuild(TransactionID, BindingRequest)
	m.Add(AttrMessageIntegrity, make([]byte, 10))
	assert.True(t, IsAttrSizeInvalid(NewShortTermIntegrity("pwd").Check(m)))
}

func TestNewLongTermIntegrity(t *testing.T) {
	// RFC 5389: key = MD5(username ":" realm ":" password).
	i := NewLongTermIntegrity("user", "realm", "pass")
	assert.Len(t, []byte(i), 16)
}

func BenchmarkMessageIntegrity_AddTo(b *testing.B) {
	key := NewShortTermIntegrity("password")
	m := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Reset()
		m.WriteHeader()
		if err := key.AddTo(m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMessageIntegrity_Check(b *testing.B) {
	key := NewShortTermIntegrity("password")
	m := MustBuild(TransactionID, BindingRequest, NewSoftware("software"), key)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := key.Check(m); err != nil {
			b.Fatal(err)
		}
	}
}
