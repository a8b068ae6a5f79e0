package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestLen is the length of the hex string produced by Digest.
const DigestLen = sha256.Size * 2

// Digest computes the stored credential digest of a plaintext password:
// an unsalted SHA-256 rendered as 64 lowercase hex characters.
//
// The function is deterministic: two users with the same password produce
// identical digests. That is a known weakness of the stored credential
// format; it is kept as-is because existing rows were written with exactly
// this digest and any salted or iterated scheme would break equality
// against them.
func Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
