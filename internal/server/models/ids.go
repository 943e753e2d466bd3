package models

import "crypto/rand"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 10
)

// NewSymptomID returns a fresh kind-prefixed symptom identifier.
func NewSymptomID() string { return newID("sym") }

// NewMetricID returns a fresh kind-prefixed metric identifier.
func NewMetricID() string { return newID("met") }

// newID produces "<prefix>_" plus idLength random lowercase alphanumerics.
// Collisions are not excluded here; the store's primary key rejects
// duplicate inserts.
func newID(prefix string) string {
	buf := make([]byte, idLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return prefix + "_" + string(buf)
}
