package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"honestspace/server/internal/apperrors"
)

// translateError maps driver and gorm errors onto the application error
// taxonomy so handlers never inspect driver-specific messages.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.New(apperrors.CodeNotFound, "record not found")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.New(apperrors.CodeReferentialIntegrity, "operation violates a reference constraint")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.New(apperrors.CodeUniqueness, "duplicate value for a unique field")
	}

	// sqlite and postgres report constraint violations through their own
	// error types; match on message as a fallback.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "SQLSTATE 23505"),
		strings.Contains(msg, "duplicate key value"):
		return apperrors.New(apperrors.CodeUniqueness, "duplicate value for a unique field")
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "SQLSTATE 23503"),
		strings.Contains(msg, "violates foreign key constraint"):
		return apperrors.New(apperrors.CodeReferentialIntegrity, "operation violates a reference constraint")
	}

	return err
}
