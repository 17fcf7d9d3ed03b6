package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Sentinel markers wrapping the plaintext inside the obfuscated transport
// form of a password. The values are part of the wire contract with existing
// clients and must not change.
const (
	passwordPrefix = "baby"
	passwordSuffix = "go"
)

// ErrUnparseablePassword is returned by DeobfuscatePassword when the input
// is not valid base64 or the decoded value is not wrapped in the expected
// sentinel markers.
var ErrUnparseablePassword = errors.New("unable to parse obfuscated password")

// DeobfuscatePassword recovers the plaintext secret from its obfuscated
// transport form: base64("baby" + plaintext + "go").
//
// This is obfuscation, not encryption. It provides no confidentiality
// against anyone who observes the wire payload; it only keeps the literal
// secret out of casual header and log scraping. The scheme is preserved
// exactly for compatibility with existing clients.
//
// The returned plaintext must never be logged or persisted. Callers hash it
// immediately (see [SHA256Hex]) and discard it.
func DeobfuscatePassword(obfuscated string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(obfuscated)
	if err != nil {
		return "", ErrUnparseablePassword
	}

	s := string(decoded)
	if !strings.HasPrefix(s, passwordPrefix) || !strings.HasSuffix(s, passwordSuffix) {
		return "", ErrUnparseablePassword
	}

	return s[len(passwordPrefix) : len(s)-len(passwordSuffix)], nil
}

// ObfuscatePassword applies the transport obfuscation to a plaintext secret.
// It exists for clients and tests; the server itself only de-obfuscates.
func ObfuscatePassword(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(passwordPrefix + plaintext + passwordSuffix))
}
