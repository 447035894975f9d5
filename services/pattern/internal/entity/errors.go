package entity

import (
	"errors"
	"fmt"
	"strings"

	"pattern-share/pkg/filetype"
)

var (
	ErrPatternNotFound    = errors.New("pattern not found")
	ErrDuplicateSlug      = errors.New("a pattern with this slug already exists")
	ErrMissingField       = errors.New("missing required field")
	ErrBlockedTerm        = errors.New("inappropriate language detected")
	ErrInvalidPatternFile = fmt.Errorf("invalid pattern file type, allowed types: %s", strings.Join(filetype.DocumentExtensions(), ", "))
	ErrInvalidThumbnail   = fmt.Errorf("invalid thumbnail file type, allowed types: %s", strings.Join(filetype.ImageExtensions(), ", "))
	ErrEmptyQuery         = errors.New("search query is required")
)

var validationErrors = []error{
	ErrDuplicateSlug,
	ErrMissingField,
	ErrBlockedTerm,
	ErrInvalidPatternFile,
	ErrInvalidThumbnail,
	ErrEmptyQuery,
}

// IsValidationError reports whether err was caused by bad client input.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
