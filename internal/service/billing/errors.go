package billing

import "github.com/Alijeyrad/hospital_records/internal/repo"

var (
	ErrBillNotFound  = repo.NotFoundError("no bill found with ID")
	ErrDuplicateBill = repo.DuplicateIDError("duplicate bill ID")
	ErrNothingToBill = repo.NotFoundError("no services to bill for patient")
	ErrNoBills       = repo.NotFoundError("no bills found for patient")
)
