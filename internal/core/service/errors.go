package service

import (
	"errors"
	"fmt"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// passthrough errors already carry a caller-meaningful classification.
var passthrough = []error{
	domain.ErrPersistence,
	domain.ErrInvalidInput,
	domain.ErrNotFound,
	domain.ErrUserNotFound,
	domain.ErrUserExists,
	domain.ErrReservationNotFound,
}

// persistenceErr tags an unclassified store failure as domain.ErrPersistence.
func persistenceErr(op string, err error) error {
	for _, known := range passthrough {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}
