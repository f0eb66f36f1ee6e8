// Package validate holds the field rules every create and update runs before
// touching the database.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/spf13/cast"

	"github.com/Alijeyrad/hospital_records/pkg/constants"
)

const (
	MinAge     = 0
	MaxAge     = 120
	MinCost    = 0
	MaxCost    = 5000
	MinContact = 10
)

var (
	personNameRe  = regexp.MustCompile(`^[A-Za-z. ]+$`)
	serviceNameRe = regexp.MustCompile(`^[A-Za-z0-9\s\-_]+$`)
	dateRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	digitsRe      = regexp.MustCompile(`^\d+$`)
	alnumRe       = regexp.MustCompile(`^[A-Za-z0-9]+$`)

	// Genders lists the accepted gender values.
	Genders = []string{"M", "F", "Other"}
)

// Error is a rejected field. Message is written for the operator.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validator carries the configurable rules. The zero value only applies the
// digit rule to contact numbers.
type Validator struct {
	phoneRegion string
}

func New(phoneRegion string) *Validator {
	return &Validator{phoneRegion: strings.ToUpper(strings.TrimSpace(phoneRegion))}
}

// ---------------------------------------------------------------------------
// People
// ---------------------------------------------------------------------------

func Name(s string) error {
	if !personNameRe.MatchString(s) {
		return fail("name", "Invalid Name. Only letters, spaces, and periods allowed.")
	}
	return nil
}

func Age(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !digitsRe.MatchString(s) {
		return 0, fail("age", "Invalid Age. Must be between %d and %d.", MinAge, MaxAge)
	}
	// cast parses with base detection, so a leading zero would read as octal.
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	age, err := cast.ToIntE(trimmed)
	if err != nil || age < MinAge || age > MaxAge {
		return 0, fail("age", "Invalid Age. Must be between %d and %d.", MinAge, MaxAge)
	}
	return age, nil
}

func Gender(s string) (string, error) {
	for _, g := range Genders {
		if s == g {
			return g, nil
		}
	}
	return "", fail("gender", "Invalid Gender. Choose from %s.", strings.Join(Genders, ", "))
}

// Contact accepts digit-only numbers of at least ten digits and, when a
// region is configured, numbers valid for that region.
func (v *Validator) Contact(s string) error {
	if !digitsRe.MatchString(s) || len(s) < MinContact {
		return fail("contact_no", "Invalid Contact Number. Must be at least %d digits.", MinContact)
	}
	if v == nil || v.phoneRegion == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, v.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumberForRegion(num, v.phoneRegion) {
		return fail("contact_no", "Invalid Contact Number. Not a valid %s number.", v.phoneRegion)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Dates and ids
// ---------------------------------------------------------------------------

// Date parses a YYYY-MM-DD calendar date. label names the field in the
// operator message, e.g. "Admission Date".
func Date(label, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dateRe.MatchString(s) {
		return time.Time{}, fail(fieldKey(label), "Invalid %s. Use YYYY-MM-DD format.", label)
	}
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return time.Time{}, fail(fieldKey(label), "Invalid %s. %s is not a calendar date.", label, s)
	}
	return t, nil
}

// ID accepts alphanumeric identifiers such as "B001".
func ID(label, s string) error {
	if !alnumRe.MatchString(s) {
		return fail(fieldKey(label), "Invalid %s. Must be alphanumeric.", label)
	}
	return nil
}

// PatientID parses a numeric patient id.
func PatientID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !digitsRe.MatchString(s) {
		return 0, fail("patient_id", "Invalid Patient ID. Must be numeric.")
	}
	id, err := cast.ToIntE(strings.TrimLeft(s, "0"))
	if err != nil || id <= 0 {
		return 0, fail("patient_id", "Invalid Patient ID. Must be numeric.")
	}
	return id, nil
}

func Required(label, s string) error {
	if strings.TrimSpace(s) == "" {
		return fail(fieldKey(label), "%s cannot be empty.", label)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Services and money
// ---------------------------------------------------------------------------

func ServiceName(s string) error {
	if !serviceNameRe.MatchString(s) {
		return fail("service_name", "Invalid Service Name. Only letters, digits, spaces, hyphens and underscores allowed.")
	}
	return nil
}

func Cost(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fail("cost", "Invalid Cost. Must be a number between %d and %d.", MinCost, MaxCost)
	}
	c, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(c) || c < MinCost || c > MaxCost {
		return 0, fail("cost", "Invalid Cost. Must be a number between %d and %d.", MinCost, MaxCost)
	}
	return c, nil
}

// Charge parses a consulting charge. Empty means no charge.
func Charge(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	c, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return 0, fail("consulting_charge", "Invalid Consulting Charge. Must be a non-negative number.")
	}
	return c, nil
}

func fieldKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}
