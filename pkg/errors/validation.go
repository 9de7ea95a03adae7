package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds node and cluster identifiers read from graph files.
const maxIDLength = 128

// ValidateIdentifier validates a node or cluster identifier read from a graph
// file. Identifiers end up quoted inside DOT source, so control characters
// and embedded quotes are rejected.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "identifier cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidGraph, "identifier too long (max %d characters): %.20q...", maxIDLength, id)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "identifier %q contains control characters", id)
		}
	}
	if strings.ContainsAny(id, `"\`) {
		return New(ErrCodeInvalidGraph, "identifier %q contains quotes or backslashes", id)
	}
	return nil
}

// ValidateOutputPath validates the destination path for a rendered diagram.
//
// Validation rules:
//   - Path cannot be empty or whitespace
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}
	return nil
}
