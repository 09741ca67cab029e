// Package id mints identifiers for stored analyses. IDs appear in API
// paths and the analyses table's primary key, so they are kept short,
// lower-case and URL-safe.
package id

import "crypto/rand"

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	length   = 16
)

// GenerateID returns a random 16-character lower-case alphanumeric ID.
func GenerateID() string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = alphabet[b[i]%byte(len(alphabet))]
	}
	return string(b)
}
