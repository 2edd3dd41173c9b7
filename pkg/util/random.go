package util

import (
	"crypto/rand"
	"math/big"
)

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString returns a random string of length n.
func GetRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomChars))))
		if err != nil {
			b[i] = randomChars[0]
			continue
		}
		b[i] = randomChars[idx.Int64()]
	}
	return string(b)
}
