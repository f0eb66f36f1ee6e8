package doctor

import (
	"context"
	"fmt"
	"log/slog"

	"entgo.io/ent/dialect/sql"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/schema"
	"github.com/Alijeyrad/hospital_records/internal/validate"
	"github.com/Alijeyrad/hospital_records/pkg/util/codes"
)

// Input is a doctor record as typed by the operator.
type Input struct {
	Name           string
	Specialization string
	ContactNo      string
}

type Service interface {
	NextID(ctx context.Context) (string, error)
	Add(ctx context.Context, id string, in Input) (*repo.Doctor, error)
	Update(ctx context.Context, id string, in Input) (*repo.Doctor, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*repo.Doctor, error)
	List(ctx context.Context) ([]*repo.Doctor, error)
	SearchByName(ctx context.Context, name string) ([]*repo.Doctor, error)
}

type doctorService struct {
	db *repo.Client
	v  *validate.Validator
}

func New(db *repo.Client, v *validate.Validator) Service {
	return &doctorService{db: db, v: v}
}

var columns = []string{
	schema.DoctorFieldID,
	schema.DoctorFieldName,
	schema.DoctorFieldSpecialization,
	schema.DoctorFieldContactNo,
}

func (s *doctorService) NextID(ctx context.Context) (string, error) {
	var ids []string
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(schema.DoctorFieldID).
			From(b.Table(schema.DoctorTable)).
			Where(sql.HasPrefix(schema.DoctorFieldID, codes.Doctor.Prefix))
		return c.Query(ctx, sel, func(r repo.Row) error {
			var id string
			if err := r.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("next doctor id: %w", err)
	}
	return codes.Doctor.Next(ids), nil
}

func (s *doctorService) Add(ctx context.Context, id string, in Input) (*repo.Doctor, error) {
	d, err := s.parse(id, in)
	if err != nil {
		return nil, err
	}

	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		_, err := c.Exec(ctx, c.Builder().Insert(schema.DoctorTable).
			Columns(columns...).
			Values(d.ID, d.Name, d.Specialization, d.ContactNo))
		return err
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w '%s'", ErrDuplicateDoctor, id)
		}
		return nil, fmt.Errorf("add doctor: %w", err)
	}

	slog.Info("doctor added", "doctor_id", d.ID)
	return d, nil
}

func (s *doctorService) Update(ctx context.Context, id string, in Input) (*repo.Doctor, error) {
	d, err := s.parse(id, in)
	if err != nil {
		return nil, err
	}

	var affected int64
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Update(schema.DoctorTable).
			Set(schema.DoctorFieldName, d.Name).
			Set(schema.DoctorFieldSpecialization, d.Specialization).
			Set(schema.DoctorFieldContactNo, d.ContactNo).
			Where(sql.EQ(schema.DoctorFieldID, id)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrDoctorNotFound, id)
	}

	slog.Info("doctor updated", "doctor_id", id)
	return d, nil
}

func (s *doctorService) Delete(ctx context.Context, id string) error {
	var affected int64
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Delete(schema.DoctorTable).
			Where(sql.EQ(schema.DoctorFieldID, id)))
		return err
	})
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w '%s'", ErrDoctorNotFound, id)
	}

	slog.Info("doctor deleted", "doctor_id", id)
	return nil
}

func (s *doctorService) Get(ctx context.Context, id string) (*repo.Doctor, error) {
	doctors, err := s.query(ctx, sql.EQ(schema.DoctorFieldID, id))
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	if len(doctors) == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrDoctorNotFound, id)
	}
	return doctors[0], nil
}

func (s *doctorService) List(ctx context.Context) ([]*repo.Doctor, error) {
	doctors, err := s.query(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *doctorService) SearchByName(ctx context.Context, name string) ([]*repo.Doctor, error) {
	doctors, err := s.query(ctx, sql.ContainsFold(schema.DoctorFieldName, name))
	if err != nil {
		return nil, fmt.Errorf("search doctors: %w", err)
	}
	return doctors, nil
}

func (s *doctorService) parse(id string, in Input) (*repo.Doctor, error) {
	if err := validate.ID("Doctor ID", id); err != nil {
		return nil, err
	}
	person := repo.Person{Name: in.Name, ContactNo: in.ContactNo}
	if err := validate.Name(person.Name); err != nil {
		return nil, err
	}
	if err := validate.Required("Specialization", in.Specialization); err != nil {
		return nil, err
	}
	if err := s.v.Contact(person.ContactNo); err != nil {
		return nil, err
	}
	return &repo.Doctor{ID: id, Person: person, Specialization: in.Specialization}, nil
}

func (s *doctorService) query(ctx context.Context, where *sql.Predicate) ([]*repo.Doctor, error) {
	var out []*repo.Doctor
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(columns...).From(b.Table(schema.DoctorTable)).OrderBy(schema.DoctorFieldID)
		if where != nil {
			sel.Where(where)
		}
		return c.Query(ctx, sel, func(r repo.Row) error {
			d := &repo.Doctor{}
			if err := r.Scan(&d.ID, &d.Name, &d.Specialization, &d.ContactNo); err != nil {
				return err
			}
			out = append(out, d)
			return nil
		})
	})
	return out, err
}
