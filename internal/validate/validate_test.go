package validate

import (
	"errors"
	"testing"
	"time"
)

func TestName(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"John Doe", false},
		{"Dr. A. Rao", false},
		{"", true},
		{"John3", true},
		{"Anne-Marie", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := Name(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Name(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"45", 45, false},
		{"120", 120, false},
		{"010", 10, false},
		{"121", 0, true},
		{"-1", 0, true},
		{"forty", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Age(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Age(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Age(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestGender(t *testing.T) {
	for _, g := range []string{"M", "F", "Other"} {
		if _, err := Gender(g); err != nil {
			t.Errorf("Gender(%q) error = %v", g, err)
		}
	}
	for _, g := range []string{"m", "Male", ""} {
		if _, err := Gender(g); err == nil {
			t.Errorf("Gender(%q) accepted", g)
		}
	}
}

func TestDate(t *testing.T) {
	got, err := Date("Admission Date", "2024-02-29")
	if err != nil {
		t.Fatalf("Date() error = %v", err)
	}
	if !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date() = %v", got)
	}

	for _, in := range []string{"2024/01/01", "01-01-2024", "2023-02-29", "2024-13-01", ""} {
		_, err := Date("Admission Date", in)
		var verr *Error
		if !errors.As(err, &verr) {
			t.Errorf("Date(%q) error = %v, want *Error", in, err)
			continue
		}
		if verr.Field != "admission_date" {
			t.Errorf("Date(%q) field = %q", in, verr.Field)
		}
	}
}

func TestContact(t *testing.T) {
	plain := New("")
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"9876543210", false},
		{"12345678901234", false},
		{"123456789", true},
		{"98765-43210", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := plain.Contact(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Contact(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestContactWithRegion(t *testing.T) {
	v := New("in")
	if err := v.Contact("9876543210"); err != nil {
		t.Errorf("Contact() valid IN mobile rejected: %v", err)
	}
	if err := v.Contact("0000000000"); err == nil {
		t.Error("Contact() accepted an invalid IN number")
	}
}

func TestServiceNameAndCost(t *testing.T) {
	if err := ServiceName("X-Ray_2 Chest"); err != nil {
		t.Errorf("ServiceName() error = %v", err)
	}
	if err := ServiceName("MRI/CT"); err == nil {
		t.Error("ServiceName() accepted a slash")
	}

	costs := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"100.5", 100.5, false},
		{"5000", 5000, false},
		{"5000.01", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range costs {
		got, err := Cost(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Cost(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Cost(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIDs(t *testing.T) {
	if err := ID("Bill ID", "B001"); err != nil {
		t.Errorf("ID() error = %v", err)
	}
	if err := ID("Bill ID", "B-001"); err == nil {
		t.Error("ID() accepted a hyphen")
	}

	id, err := PatientID("1001")
	if err != nil || id != 1001 {
		t.Errorf("PatientID() = %d, %v", id, err)
	}
	for _, in := range []string{"P1001", "", "0", "-3"} {
		if _, err := PatientID(in); err == nil {
			t.Errorf("PatientID(%q) accepted", in)
		}
	}
}

func TestChargeAndRequired(t *testing.T) {
	if c, err := Charge(""); err != nil || c != 0 {
		t.Errorf("Charge(\"\") = %v, %v", c, err)
	}
	if c, err := Charge("250"); err != nil || c != 250 {
		t.Errorf("Charge(250) = %v, %v", c, err)
	}
	if _, err := Charge("-5"); err == nil {
		t.Error("Charge() accepted a negative value")
	}

	if err := Required("Diagnosis", "  "); err == nil {
		t.Error("Required() accepted blanks")
	}
}
