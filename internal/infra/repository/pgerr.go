package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/hairsol/booking-engine/internal/httperr"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// mapSlotConflict turns a lost race on the slot index into AlreadyBooked.
func mapSlotConflict(err error) error {
	if isUniqueViolation(err, slotIndexName) {
		return httperr.Conflict(httperr.CodeAlreadyBooked, "This slot is already booked.")
	}
	return err
}

func mapWindowConflict(err error) error {
	if isUniqueViolation(err, windowIndexName) {
		return httperr.Conflict(httperr.CodeOverlappingWindow, "An identical availability window already exists.")
	}
	return err
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
