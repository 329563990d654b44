package money

import (
	"errors"
	"fmt"

	"github.com/amirasaad/banksystem/pkg/domain/common"
)

// Common money package errors
var (
	// ErrInvalidAmount is returned when an amount cannot be represented exactly
	// in the smallest currency unit (more than Scale decimal places) or cannot be parsed.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", common.ErrInvalidArgument)

	// ErrDivisionByZero is returned when dividing money by zero.
	ErrDivisionByZero = errors.New("division by zero")
)
