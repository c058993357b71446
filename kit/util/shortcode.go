package util

import (
	"crypto/sha256"
	"math/big"
)

// ShortCodeLength is the persisted code width; stored data depends on it.
const ShortCodeLength = 6

const shortCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var shortCodeBase = big.NewInt(int64(len(shortCodeAlphabet)))

// GenerateShortCode maps a seed to a fixed-length code over [0-9A-Za-z]:
// the SHA-256 digest of the seed is read as a big integer and its base62
// digits are emitted least significant first. Identical seeds always yield
// identical codes, so a caller that hits a collision must vary the seed
// and call again.
func GenerateShortCode(seed string) string {
	digest := sha256.Sum256([]byte(seed))
	value := new(big.Int).SetBytes(digest[:])

	code := make([]byte, 0, ShortCodeLength)
	remainder := new(big.Int)
	for value.Sign() > 0 && len(code) < ShortCodeLength {
		value.QuoRem(value, shortCodeBase, remainder)
		code = append(code, shortCodeAlphabet[remainder.Int64()])
	}
	for len(code) < ShortCodeLength {
		code = append(code, shortCodeAlphabet[0])
	}

	return string(code)
}
