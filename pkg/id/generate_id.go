package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var re32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a public identifier: exactly 32 lowercase hex characters,
// no separators or prefixes. Loan products and applications are addressed by
// these ids on the HTTP surface; numeric PKs stay internal.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s is a well-formed 32-char public identifier.
func Valid(s string) bool { return re32.MatchString(s) }
