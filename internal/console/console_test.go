package console

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/validate"
)

func TestReport(t *testing.T) {
	errMissing := repo.NotFoundError("no patient found with ID")
	errDup := repo.DuplicateIDError("duplicate bill ID")
	errStaged := repo.DuplicateError("service already staged")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &validate.Error{Field: "age", Message: "Invalid Age. Must be between 0 and 120."}, "Invalid Age. Must be between 0 and 120.\n"},
		{"wrapped validation", fmt.Errorf("add: %w", &validate.Error{Field: "name", Message: "Invalid Name."}), "Invalid Name.\n"},
		{"not found", fmt.Errorf("%w '%d'", errMissing, 1001), "No patient found with ID '1001'.\n"},
		{"duplicate", fmt.Errorf("%w '%s'", errDup, "B001"), "Error: Duplicate bill ID 'B001'. Please use a unique ID.\n"},
		{"duplicate without hint", fmt.Errorf("%w: '%s' for patient '%d'", errStaged, "S01", 1001), "Error: Service already staged: 'S01' for patient '1001'.\n"},
		{"other", errors.New("add bill: connection refused"), "Error: add bill: connection refused\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).Report(tt.err)
			if got := buf.String(); got != tt.want {
				t.Errorf("Report() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Table(
		[]string{"Service_ID", "Service Name", "Cost"},
		[][]string{{"S01", "Blood Test", "100.00"}, {"S02", "X-Ray", "450.00"}},
	)

	want := "Service_ID | Service Name | Cost\nS01 | Blood Test | 100.00\nS02 | X-Ray | 450.00\n"
	if got := buf.String(); got != want {
		t.Errorf("Table() wrote %q, want %q", got, want)
	}
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Warn("service %s skipped", "S01")
	if got, want := buf.String(), "Warning: service S01 skipped\n"; got != want {
		t.Errorf("Warn() wrote %q, want %q", got, want)
	}
}
