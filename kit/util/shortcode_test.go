package util

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShortCode(t *testing.T) {
	for _, testCase := range []struct {
		seed string
		code string
	}{
		{seed: "https://example.com", code: "JJrx2J"},
		{seed: "https://example.com/", code: "BitZUQ"},
		{seed: "http://localhost:8080/health", code: "xwHbVH"},
		{seed: "hello", code: "KSy5Ke"},
	} {
		assert.Equal(t, testCase.code, GenerateShortCode(testCase.seed))
	}
}

func TestGenerateShortCodeDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		seed := fmt.Sprintf("https://example.com/page/%d", i)
		assert.Equal(t, GenerateShortCode(seed), GenerateShortCode(seed))
	}
}

func TestGenerateShortCodeAlphabet(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateShortCode(fmt.Sprintf("seed-%d", i))
		assert.Len(t, code, ShortCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(shortCodeAlphabet, c), "unexpected symbol %q in %q", c, code)
		}
	}
}

func TestGenerateShortCodeSaltedSeedsDiffer(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[GenerateShortCode(fmt.Sprintf("https://example.com%d", i))] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
