package store

import (
	"math/rand"
	"strings"
)

const (
	sessionTokenPrefix = "user_"
	sessionTokenLength = 8
	base36Alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewSessionToken generates the opaque per-view conversation token:
// a fixed prefix plus a fixed-length random base-36 suffix. It is a
// correlation key, not a credential, so math/rand is enough.
func NewSessionToken() string {
	var sb strings.Builder
	sb.WriteString(sessionTokenPrefix)
	for i := 0; i < sessionTokenLength; i++ {
		sb.WriteByte(base36Alphabet[rand.Intn(len(base36Alphabet))])
	}
	return sb.String()
}
