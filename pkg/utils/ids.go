package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var safeFilename = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// NewRequestID generates an identifier for correlating a request in logs
func NewRequestID() string {
	return uuid.New().String()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// SafeFilename reports whether name is a bare file name that cannot escape
// the directory it is joined to.
func SafeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if filepath.Base(name) != name || strings.Contains(name, "..") {
		return false
	}
	return safeFilename.MatchString(name)
}
