package voter

import "math/rand"

const (
	// TokenLength is the fixed length of every access token.
	TokenLength = 6

	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateToken draws each character uniformly from the 36-character
// alphabet. Collisions across voters are accepted as vanishingly rare; the
// token is a delivery credential, not a unique ID.
func GenerateToken() string {
	b := make([]byte, TokenLength)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}

// AssignToken returns the token to use for a voter. An already-issued token
// from the store is always reused; only voters without one get a fresh
// token, reported with isNew = true so the caller can persist it after the
// email carrying it has been confirmed delivered.
func AssignToken(nim string, issued map[string]string) (token string, isNew bool) {
	if existing, ok := issued[nim]; ok && existing != "" {
		return existing, false
	}
	return GenerateToken(), true
}
