package utils

import "github.com/google/uuid"

// NewID returns a random identifier carrying the given prefix, e.g. "g_".
func NewID(prefix string) string {
	return prefix + uuid.New().String()
}
