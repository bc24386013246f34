// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuotedStringContent(t *testing.T) {
	valid := []string{
		"example.org",
		"nonce",
		"f//499k954d6OL34oL9FSTvy64sA",
		"with space",
		"tab\tseparated",
		"unicode マト",
		`quoted\ pair`,
		`\"`,
		"!#$%&'()*+,-./0123456789:;<=>?@",
	}
	for _, v := range valid {
		assert.True(t, IsQuotedStringContent([]byte(v)), "%q should be valid", v)
	}

	invalid := []string{
		"",
		`"`,              // bare double quote
		"back\\",         // trailing backslash
		"\\\n",           // quoted-pair may not escape LF
		"\\\r",           // quoted-pair may not escape CR
		"bell\x07",       // control character
		"del\x7f",        // DEL
		string([]byte{0xC0, 0x00}), // invalid UTF-8
	}
	for _, v := range invalid {
		assert.False(t, IsQuotedStringContent([]byte(v)), "%q should be invalid", v)
	}
}

func TestIsQuotedStringContent_QuotedPairRange(t *testing.T) {
	// Every byte in 0x00-0x7F except CR and LF may be escaped.
	for b := 0; b <= 0x7F; b++ {
		v := []byte{'\\', byte(b)}
		expected := b != '\n' && b != '\r'
		assert.Equal(t, expected, IsQuotedStringContent(v), "escape of 0x%02x", b)
	}
	// Bytes above 0x7F may not be escaped.
	assert.False(t, IsQuotedStringContent([]byte{'\\', 0x80}))
}
