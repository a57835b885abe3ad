package validation

import (
	"fmt"

	dErrors "ageutil/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (1 MB), enough
	// for a full batch of dates of birth.
	MaxBodySize = 1 << 20
)

// String length limits
const (
	// MaxBracketNameLength is the maximum length of a bracket name.
	MaxBracketNameLength = 64
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
