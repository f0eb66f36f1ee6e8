package patient

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect/sql"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/schema"
	"github.com/Alijeyrad/hospital_records/internal/validate"
	"github.com/Alijeyrad/hospital_records/pkg/util/codes"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Input is a patient record as typed by the operator.
type Input struct {
	Name          string
	Age           string
	Gender        string
	AdmissionDate string
	ContactNo     string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	NextID(ctx context.Context) (int, error)
	Add(ctx context.Context, id int, in Input) (*repo.Patient, error)
	Update(ctx context.Context, id int, in Input) (*repo.Patient, error)
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*repo.Patient, error)
	List(ctx context.Context) ([]*repo.Patient, error)
	SearchByName(ctx context.Context, name string) ([]*repo.Patient, error)

	// DaysAdmitted returns the whole days between admission and today.
	DaysAdmitted(ctx context.Context, id int) (int, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	db  *repo.Client
	v   *validate.Validator
	now func() time.Time
}

type Option func(*patientService)

// WithClock replaces time.Now for day arithmetic.
func WithClock(now func() time.Time) Option {
	return func(s *patientService) { s.now = now }
}

func New(db *repo.Client, v *validate.Validator, opts ...Option) Service {
	s := &patientService{db: db, v: v, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var columns = []string{
	schema.PatientFieldID,
	schema.PatientFieldName,
	schema.PatientFieldAge,
	schema.PatientFieldGender,
	schema.PatientFieldAdmissionDate,
	schema.PatientFieldContactNo,
}

func (s *patientService) NextID(ctx context.Context) (int, error) {
	var ids []int
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(schema.PatientFieldID).From(b.Table(schema.PatientTable))
		return c.Query(ctx, sel, func(r repo.Row) error {
			var id int
			if err := r.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("next patient id: %w", err)
	}
	return codes.NextNumber(ids, codes.PatientStart), nil
}

func (s *patientService) Add(ctx context.Context, id int, in Input) (*repo.Patient, error) {
	p, err := s.parse(id, in)
	if err != nil {
		return nil, err
	}

	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		_, err := c.Exec(ctx, c.Builder().Insert(schema.PatientTable).
			Columns(columns...).
			Values(p.ID, p.Name, p.Age, p.Gender, p.AdmissionDate, p.ContactNo))
		return err
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w '%d'", ErrDuplicatePatient, id)
		}
		return nil, fmt.Errorf("add patient: %w", err)
	}

	slog.Info("patient added", "patient_id", p.ID)
	return p, nil
}

func (s *patientService) Update(ctx context.Context, id int, in Input) (*repo.Patient, error) {
	p, err := s.parse(id, in)
	if err != nil {
		return nil, err
	}

	var affected int64
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Update(schema.PatientTable).
			Set(schema.PatientFieldName, p.Name).
			Set(schema.PatientFieldAge, p.Age).
			Set(schema.PatientFieldGender, p.Gender).
			Set(schema.PatientFieldAdmissionDate, p.AdmissionDate).
			Set(schema.PatientFieldContactNo, p.ContactNo).
			Where(sql.EQ(schema.PatientFieldID, id)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w '%d'", ErrPatientNotFound, id)
	}

	slog.Info("patient updated", "patient_id", id)
	return p, nil
}

func (s *patientService) Delete(ctx context.Context, id int) error {
	var affected int64
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Delete(schema.PatientTable).
			Where(sql.EQ(schema.PatientFieldID, id)))
		return err
	})
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w '%d'", ErrPatientNotFound, id)
	}

	slog.Info("patient deleted", "patient_id", id)
	return nil
}

func (s *patientService) Get(ctx context.Context, id int) (*repo.Patient, error) {
	patients, err := s.query(ctx, func(sel *sql.Selector) {
		sel.Where(sql.EQ(schema.PatientFieldID, id))
	})
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	if len(patients) == 0 {
		return nil, fmt.Errorf("%w '%d'", ErrPatientNotFound, id)
	}
	return patients[0], nil
}

func (s *patientService) List(ctx context.Context) ([]*repo.Patient, error) {
	patients, err := s.query(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (s *patientService) SearchByName(ctx context.Context, name string) ([]*repo.Patient, error) {
	patients, err := s.query(ctx, func(sel *sql.Selector) {
		sel.Where(sql.ContainsFold(schema.PatientFieldName, name))
	})
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	return patients, nil
}

func (s *patientService) DaysAdmitted(ctx context.Context, id int) (int, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	today := repo.DateOnly(s.now().UTC())
	return int(today.Sub(repo.DateOnly(p.AdmissionDate)).Hours() / 24), nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// parse validates every field in the order the operator enters them and stops
// at the first failure.
func (s *patientService) parse(id int, in Input) (*repo.Patient, error) {
	if id <= 0 {
		return nil, &validate.Error{Field: "patient_id", Message: "Invalid Patient ID. Must be numeric."}
	}
	if err := validate.Name(in.Name); err != nil {
		return nil, err
	}
	age, err := validate.Age(in.Age)
	if err != nil {
		return nil, err
	}
	gender, err := validate.Gender(in.Gender)
	if err != nil {
		return nil, err
	}
	admitted, err := validate.Date("Admission Date", in.AdmissionDate)
	if err != nil {
		return nil, err
	}
	if err := s.v.Contact(in.ContactNo); err != nil {
		return nil, err
	}

	return &repo.Patient{
		ID:            id,
		Person:        repo.Person{Name: in.Name, ContactNo: in.ContactNo},
		Age:           age,
		Gender:        gender,
		AdmissionDate: admitted,
	}, nil
}

func (s *patientService) query(ctx context.Context, where func(*sql.Selector)) ([]*repo.Patient, error) {
	var out []*repo.Patient
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(columns...).From(b.Table(schema.PatientTable)).OrderBy(schema.PatientFieldID)
		if where != nil {
			where(sel)
		}
		return c.Query(ctx, sel, func(r repo.Row) error {
			p := &repo.Patient{}
			if err := r.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.AdmissionDate, &p.ContactNo); err != nil {
				return err
			}
			p.AdmissionDate = repo.DateOnly(p.AdmissionDate)
			out = append(out, p)
			return nil
		})
	})
	return out, err
}
