package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// Equal compares two MACs in constant time
func Equal(a, b []byte) bool {
	return hmac.Equal(a, b)
}

// EqualString compares two credential strings without leaking timing
// information. Both sides are hashed first so comparison time does not
// depend on their lengths or on where they diverge.
func EqualString(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
