package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a 32-char hex id, used for session identifiers.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
