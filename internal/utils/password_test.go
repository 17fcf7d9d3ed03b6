package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeobfuscatePassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "simple", plaintext: "secret"},
		{name: "empty", plaintext: ""},
		{name: "unicode", plaintext: "пароль-密码"},
		{name: "contains sentinels", plaintext: "babygo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recovered, err := DeobfuscatePassword(ObfuscatePassword(tt.plaintext))
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, recovered)
		})
	}
}

func TestObfuscatePassword_WireFormat(t *testing.T) {
	// формат зафиксирован контрактом с существующими клиентами
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("babysecretgo")), ObfuscatePassword("secret"))
}

func TestDeobfuscatePassword_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		obfuscated string
	}{
		{name: "not base64", obfuscated: "%%%not-base64%%%"},
		{name: "missing prefix sentinel", obfuscated: base64.StdEncoding.EncodeToString([]byte("secretgo"))},
		{name: "missing suffix sentinel", obfuscated: base64.StdEncoding.EncodeToString([]byte("babysecret"))},
		{name: "plain base64 without sentinels", obfuscated: base64.StdEncoding.EncodeToString([]byte("secret"))},
		{name: "empty", obfuscated: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeobfuscatePassword(tt.obfuscated)
			assert.ErrorIs(t, err, ErrUnparseablePassword)
		})
	}
}
