package Models

import (
	"errors"
	"strings"
)

var (
	// ErrInsufficientStock is returned when a bill line requests more
	// units than the product currently has.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrTotalMismatch is returned when the submitted totals do not add up
	// against the bill lines.
	ErrTotalMismatch = errors.New("total does not match subtotal + tax - discount")

	// ErrEmptyBill is returned when a bill is submitted without lines.
	ErrEmptyBill = errors.New("bill must contain at least one item")
)

// IsDuplicateKey reports whether err is a unique-constraint violation from
// the underlying driver (sqlite or mysql).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "unique constraint")
}
