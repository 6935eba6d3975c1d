package draw

import (
	"crypto"
	"crypto/sha512"
	"encoding/hex"
)

// DigestSize is the length in bytes of an entropy digest.
const DigestSize = sha512.Size

func init() {
	// crypto/sha512 registers itself on import; a build without it cannot
	// produce compatible draws at all.
	if !crypto.SHA512.Available() {
		panic("draw: SHA-512 is not available in this binary")
	}
}

// Digest returns the SHA-512 digest of the entropy's UTF-8 bytes.
// No salt or key is mixed in; the entropy is the sole input.
func Digest(entropy string) [DigestSize]byte {
	return sha512.Sum512([]byte(entropy))
}

// DigestHex returns Digest rendered as 128 lowercase hex digits,
// most significant byte first.
func DigestHex(entropy string) string {
	sum := Digest(entropy)
	return hex.EncodeToString(sum[:])
}
