package appointment

import (
	"errors"

	"github.com/Alijeyrad/hospital_records/internal/repo"
)

var (
	ErrAppointmentNotFound  = repo.NotFoundError("no appointment found with ID")
	ErrDuplicateAppointment = repo.DuplicateIDError("duplicate appointment ID")
	ErrInvalidRange         = errors.New("start date is after end date")
)
