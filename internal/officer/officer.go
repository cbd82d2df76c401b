package officer

import "crypto/subtle"

// Verify checks a submitted officer passcode against the configured one in
// constant time. An unset passcode rejects everything rather than letting
// an empty submission through.
func Verify(secret, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) == 1
}
