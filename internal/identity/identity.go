// Package identity derives a stable pseudonymous key for the caller of a
// request. The key is used for quota accounting only; it is never persisted
// as an object and never leaves the process.
//
// Resolution prefers an explicit caller-supplied identifier. Without one it
// falls back to a digest of connection metadata (source address plus a
// truncated client descriptor, typically the User-Agent). The same caller
// therefore maps to the same key across requests and process restarts, while
// distinguishable callers collide only with SHA-256 probability.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// maxDescriptorLen caps the client descriptor contribution so absurdly long
// User-Agent strings cannot be used to mint unlimited identities cheaply.
const maxDescriptorLen = 200

// Resolve returns the pseudonymous identity for a caller.
//
// When explicitID is non-empty after trimming, the identity is
// sha256("user:" + explicitID). Otherwise it is
// sha256(sourceAddr + "|" + descriptor) with the descriptor truncated to
// 200 bytes. The result is a 64-character lowercase hex string.
func Resolve(explicitID, sourceAddr, clientDescriptor string) string {
	if id := strings.TrimSpace(explicitID); id != "" {
		return digest("user:" + id)
	}
	desc := clientDescriptor
	if len(desc) > maxDescriptorLen {
		desc = desc[:maxDescriptorLen]
	}
	return digest(sourceAddr + "|" + desc)
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
