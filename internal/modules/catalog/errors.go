package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("stadium not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrStadiumExists   = errors.New("stadium with this name already exists")
)

// ValidationError carries the failing fields of a request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, e.Fields[k]))
	}
	return "validation error: " + strings.Join(parts, ",")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
