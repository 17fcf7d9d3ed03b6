package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances
// shared by concurrent logins.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// SHA256Hex computes the SHA-256 digest of the given string and returns it
// as a lowercase hex-encoded string.
//
// This is the canonical password-digest function of the system: stored
// account passwords are SHA-256 hex digests, and the login chain compares
// SHA256Hex(presented secret) against the stored value. The format is fixed;
// changing it would invalidate every stored credential.
//
// Behavior:
//   - Retrieves a hash.Hash instance from the pool
//   - Resets it, writes the data, computes the sum
//   - Resets again and returns it to the pool
//
// Example usage:
//
//	digest := utils.SHA256Hex("secret")
func SHA256Hex(data string) string {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write([]byte(data))
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return hex.EncodeToString(sum)
}

// DigestsEqual compares two hex-encoded digests in constant time with
// respect to their contents.
func DigestsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
