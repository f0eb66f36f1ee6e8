package usage

import "github.com/Alijeyrad/hospital_records/internal/repo"

var ErrDuplicateUsage = repo.DuplicateError("service already staged")
