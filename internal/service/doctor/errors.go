package doctor

import "github.com/Alijeyrad/hospital_records/internal/repo"

var (
	ErrDoctorNotFound  = repo.NotFoundError("no doctor found with ID")
	ErrDuplicateDoctor = repo.DuplicateIDError("duplicate doctor ID")
)
