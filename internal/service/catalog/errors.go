package catalog

import "github.com/Alijeyrad/hospital_records/internal/repo"

var (
	ErrServiceNotFound  = repo.NotFoundError("no service found with ID")
	ErrDuplicateService = repo.DuplicateIDError("duplicate service ID")
)
