package domain

import (
	"fmt"
	"strings"
)

// Fio issues fixed-length API tokens.
const TokenLength = 64

// Token is the bearer credential for one account. It travels inside
// request paths, so anything that logs a path must go through Redact.
type Token struct {
	value string
}

// NewToken validates and wraps a raw token string.
func NewToken(value string) (Token, error) {
	if len(value) != TokenLength {
		return Token{}, fmt.Errorf("invalid token length: expected %d characters, got %d", TokenLength, len(value))
	}
	return Token{value: value}, nil
}

// Value returns the raw token for request building.
func (t Token) Value() string {
	return t.value
}

// Redact replaces the token value in s with a placeholder.
func (t Token) Redact(s string) string {
	if t.value == "" {
		return s
	}
	return strings.ReplaceAll(s, t.value, "<token>")
}

// String implements fmt.Stringer so a token can never leak through
// formatting verbs.
func (t Token) String() string {
	return "<token>"
}
