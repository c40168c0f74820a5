package lifecycle

import (
	"fmt"

	"ecsrs/pkg/types"
)

// The helpers attach a caller-facing reason while keeping the sentinel
// matchable with errors.Is.

func validationError(reason string) error {
	return fmt.Errorf("%w: %s", types.ErrValidation, reason)
}

func unauthorizedError(reason string) error {
	return fmt.Errorf("%w: %s", types.ErrUnauthorized, reason)
}

func invalidTransitionError(from, to types.ReportStatus) error {
	return fmt.Errorf("%w: %s -> %s", types.ErrInvalidTransition, from, to)
}
