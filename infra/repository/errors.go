package repository

import (
	"errors"

	"github.com/fintechlab/bankapi/pkg/domain"
	"gorm.io/gorm"
)

// MapGormError converts GORM errors to domain errors so services and the
// request layer never import gorm. Unmapped errors pass through unchanged.
func MapGormError(err error) error {
	if err == nil {
		return nil
	}
	for current := err; current != nil; current = errors.Unwrap(current) {
		switch {
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		}
	}
	return err
}
