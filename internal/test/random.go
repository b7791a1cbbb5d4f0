package test

import (
	"math/rand/v2"
	"strings"
)

const (
	loginAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digits        = "0123456789"
)

// RandomASCIIString returns an alphanumeric string with a length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	return randomFrom(loginAlphabet, minLen+rand.IntN(maxLen-minLen+1))
}

// RandomPhone returns a ten digit local mobile number such as 0241234567.
func RandomPhone() string {
	prefixes := []string{"024", "054", "055", "020", "050", "027", "057"}
	var b strings.Builder
	b.WriteString(prefixes[rand.IntN(len(prefixes))])
	b.WriteString(randomFrom(digits, 7))
	return b.String()
}

func randomFrom(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(buf)
}
