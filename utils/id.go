package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID returns an 8 character hex id.
func ShortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
