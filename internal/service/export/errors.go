package export

import (
	"errors"

	"github.com/Alijeyrad/hospital_records/internal/repo"
)

var (
	ErrNoRecords     = repo.NotFoundError("no records to export")
	ErrUnknownKind   = errors.New("unknown export kind")
	ErrUnknownFormat = errors.New("unknown export format")
)
