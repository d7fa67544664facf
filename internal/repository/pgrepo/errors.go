package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/snow-topup/internal/domain"
)

const (
	uniqueViolationCode = "23505"
	invalidTextReprCode = "22P02"
)

// convertErr преобразует ошибку к стандартному виду для слоя репозитория:
//   - pgx.ErrNoRows -> domain.ErrRecordNotFound;
//   - невалидный литерал в запросе (например, не-uuid в WHERE id = $1) ->
//     domain.ErrRecordNotFound, такой строки заведомо нет;
//   - нарушение уникального ключа -> domain.ErrDuplicateKey;
//   - все остальное -> domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	errType := domain.ErrUnknown

	if errors.As(err, &pgErr) {
		switch {
		case isUniqueViolationErr(pgErr):
			errType = domain.ErrDuplicateKey
		case isInvalidTextReprErr(pgErr):
			errType = domain.ErrRecordNotFound
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}

func isUniqueViolationErr(err *pgconn.PgError) bool {
	return err.Code == uniqueViolationCode
}

func isInvalidTextReprErr(err *pgconn.PgError) bool {
	return err.Code == invalidTextReprCode
}
