package appointment

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

// Input is an appointment as typed by the operator.
type Input struct {
	PatientID        string
	DoctorID         string
	Date             string
	Diagnosis        string
	ConsultingCharge string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	NextID(ctx context.Context) (string, error)
	Add(ctx context.Context, id string, in Input) (*repo.Appointment, error)
	Update(ctx context.Context, id string, in Input) (*repo.Appointment, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*repo.Appointment, error)
	List(ctx context.Context) ([]*repo.Appointment, error)
	ListByPatient(ctx context.Context, patientID int) ([]*repo.Appointment, error)

	// FilterByDate returns appointments dated within [from, to], both inclusive.
	FilterByDate(ctx context.Context, from, to time.Time) ([]*repo.Appointment, error)

	// DaysBetween returns the day gaps between a patient's consecutive
	// appointments in date order. Fewer than two appointments yield none.
	DaysBetween(ctx context.Context, patientID int) ([]int, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &appointmentService{db: db}
}

var columns = []string{
	schema.AppointmentFieldID,
	schema.AppointmentFieldPatientID,
	schema.AppointmentFieldDoctorID,
	schema.AppointmentFieldDate,
	schema.AppointmentFieldDiagnosis,
	schema.AppointmentFieldConsultingCharge,
}

func (s *appointmentService) NextID(ctx context.Context) (string, error) {
	var ids []string
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(schema.AppointmentFieldID).
			From(b.Table(schema.AppointmentTable)).
			Where(sql.HasPrefix(schema.AppointmentFieldID, codes.Appointment.Prefix))
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
		return "", fmt.Errorf("next appointment id: %w", err)
	}
	return codes.Appointment.Next(ids), nil
}

func (s *appointmentService) Add(ctx context.Context, id string, in Input) (*repo.Appointment, error) {
	a, err := parse(id, in)
	if err != nil {
		return nil, err
	}

	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		_, err := c.Exec(ctx, c.Builder().Insert(schema.AppointmentTable).
			Columns(columns...).
			Values(a.ID, a.PatientID, a.DoctorID, a.Date, a.Diagnosis, a.ConsultingCharge))
		return err
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w '%s'", ErrDuplicateAppointment, id)
		}
		return nil, fmt.Errorf("add appointment: %w", err)
	}

	slog.Info("appointment added", "appointment_id", a.ID, "patient_id", a.PatientID, "doctor_id", a.DoctorID)
	return a, nil
}

func (s *appointmentService) Update(ctx context.Context, id string, in Input) (*repo.Appointment, error) {
	a, err := parse(id, in)
	if err != nil {
		return nil, err
	}

	var affected int64
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Update(schema.AppointmentTable).
			Set(schema.AppointmentFieldPatientID, a.PatientID).
			Set(schema.AppointmentFieldDoctorID, a.DoctorID).
			Set(schema.AppointmentFieldDate, a.Date).
			Set(schema.AppointmentFieldDiagnosis, a.Diagnosis).
			Set(schema.AppointmentFieldConsultingCharge, a.ConsultingCharge).
			Where(sql.EQ(schema.AppointmentFieldID, id)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrAppointmentNotFound, id)
	}

	slog.Info("appointment updated", "appointment_id", id)
	return a, nil
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	var affected int64
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Delete(schema.AppointmentTable).
			Where(sql.EQ(schema.AppointmentFieldID, id)))
		return err
	})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w '%s'", ErrAppointmentNotFound, id)
	}

	slog.Info("appointment deleted", "appointment_id", id)
	return nil
}

func (s *appointmentService) Get(ctx context.Context, id string) (*repo.Appointment, error) {
	appts, err := s.query(ctx, sql.EQ(schema.AppointmentFieldID, id), schema.AppointmentFieldID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if len(appts) == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrAppointmentNotFound, id)
	}
	return appts[0], nil
}

func (s *appointmentService) List(ctx context.Context) ([]*repo.Appointment, error) {
	appts, err := s.query(ctx, nil, schema.AppointmentFieldID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (s *appointmentService) ListByPatient(ctx context.Context, patientID int) ([]*repo.Appointment, error) {
	appts, err := s.query(ctx, sql.EQ(schema.AppointmentFieldPatientID, patientID), schema.AppointmentFieldDate)
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return appts, nil
}

func (s *appointmentService) FilterByDate(ctx context.Context, from, to time.Time) ([]*repo.Appointment, error) {
	from, to = repo.DateOnly(from), repo.DateOnly(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}

	appts, err := s.query(ctx, sql.And(
		sql.GTE(schema.AppointmentFieldDate, from),
		sql.LTE(schema.AppointmentFieldDate, to),
	), schema.AppointmentFieldDate)
	if err != nil {
		return nil, fmt.Errorf("filter appointments: %w", err)
	}
	return appts, nil
}

func (s *appointmentService) DaysBetween(ctx context.Context, patientID int) ([]int, error) {
	appts, err := s.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(appts))
	for i, a := range appts {
		dates[i] = a.Date
	}
	return Gaps(dates), nil
}

// Gaps returns the whole-day differences between consecutive dates, which
// must already be sorted.
func Gaps(dates []time.Time) []int {
	if len(dates) < 2 {
		return []int{}
	}
	out := make([]int, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		d := repo.DateOnly(dates[i]).Sub(repo.DateOnly(dates[i-1]))
		out = append(out, int(d.Hours()/24))
	}
	return out
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func parse(id string, in Input) (*repo.Appointment, error) {
	if err := validate.ID("Appointment ID", id); err != nil {
		return nil, err
	}
	patientID, err := validate.PatientID(in.PatientID)
	if err != nil {
		return nil, err
	}
	if err := validate.ID("Doctor ID", in.DoctorID); err != nil {
		return nil, err
	}
	date, err := validate.Date("Date", in.Date)
	if err != nil {
		return nil, err
	}
	if err := validate.Required("Diagnosis", in.Diagnosis); err != nil {
		return nil, err
	}
	charge, err := validate.Charge(in.ConsultingCharge)
	if err != nil {
		return nil, err
	}
	return &repo.Appointment{
		ID:               id,
		PatientID:        patientID,
		DoctorID:         in.DoctorID,
		Date:             date,
		Diagnosis:        in.Diagnosis,
		ConsultingCharge: charge,
	}, nil
}

func (s *appointmentService) query(ctx context.Context, where *sql.Predicate, orderBy ...string) ([]*repo.Appointment, error) {
	var out []*repo.Appointment
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(columns...).From(b.Table(schema.AppointmentTable)).OrderBy(orderBy...)
		if where != nil {
			sel.Where(where)
		}
		return c.Query(ctx, sel, func(r repo.Row) error {
			a := &repo.Appointment{}
			if err := r.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Diagnosis, &a.ConsultingCharge); err != nil {
				return err
			}
			a.Date = repo.DateOnly(a.Date)
			out = append(out, a)
			return nil
		})
	})
	return out, err
}
