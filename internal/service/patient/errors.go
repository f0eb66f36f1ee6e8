package patient

import "github.com/Alijeyrad/hospital_records/internal/repo"

var (
	ErrPatientNotFound  = repo.NotFoundError("no patient found with ID")
	ErrDuplicatePatient = repo.DuplicateIDError("duplicate patient ID")
)
