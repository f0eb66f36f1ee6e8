// Package usage manages the per-patient staging table of services consumed
// but not yet billed.
package usage

import (
	"context"
	"fmt"
	"log/slog"

	"entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/schema"
	"github.com/Alijeyrad/hospital_records/internal/validate"
)

type Service interface {
	// Add stages one catalog service for a patient.
	Add(ctx context.Context, patientID int, svc *repo.Service) (*repo.ServiceUsage, error)
	List(ctx context.Context, patientID int) ([]*repo.ServiceUsage, error)
	// Clear removes every staged row of the patient and returns how many went.
	Clear(ctx context.Context, patientID int) (int64, error)
	Total(ctx context.Context, patientID int) (float64, error)
}

type usageService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &usageService{db: db}
}

func (s *usageService) Add(ctx context.Context, patientID int, svc *repo.Service) (*repo.ServiceUsage, error) {
	u, err := parse(patientID, svc)
	if err != nil {
		return nil, err
	}

	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		_, err := c.Exec(ctx, c.Builder().Insert(schema.ServiceUsageTable).
			Columns(schema.UsageFieldPatient, schema.UsageFieldService, schema.UsageFieldName, schema.UsageFieldCost).
			Values(u.PatientID, u.ServiceID, u.ServiceName, u.Cost))
		return err
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: '%s' for patient '%d'", ErrDuplicateUsage, u.ServiceID, patientID)
		}
		return nil, fmt.Errorf("stage service: %w", err)
	}

	slog.Info("service staged", "patient_id", patientID, "service_id", u.ServiceID, "cost", u.Cost)
	return u, nil
}

func (s *usageService) List(ctx context.Context, patientID int) ([]*repo.ServiceUsage, error) {
	var out []*repo.ServiceUsage
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(schema.UsageFieldPatient, schema.UsageFieldService, schema.UsageFieldName, schema.UsageFieldCost).
			From(b.Table(schema.ServiceUsageTable)).
			Where(sql.EQ(schema.UsageFieldPatient, patientID)).
			OrderBy(schema.UsageFieldService)
		return c.Query(ctx, sel, func(r repo.Row) error {
			u := &repo.ServiceUsage{}
			if err := r.Scan(&u.PatientID, &u.ServiceID, &u.ServiceName, &u.Cost); err != nil {
				return err
			}
			out = append(out, u)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list staged services: %w", err)
	}
	return out, nil
}

func (s *usageService) Clear(ctx context.Context, patientID int) (int64, error) {
	var affected int64
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Delete(schema.ServiceUsageTable).
			Where(sql.EQ(schema.UsageFieldPatient, patientID)))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear staged services: %w", err)
	}

	slog.Info("staged services cleared", "patient_id", patientID, "rows", affected)
	return affected, nil
}

func (s *usageService) Total(ctx context.Context, patientID int) (float64, error) {
	staged, err := s.List(ctx, patientID)
	if err != nil {
		return 0, err
	}
	return lo.SumBy(staged, func(u *repo.ServiceUsage) float64 { return u.Cost }), nil
}

func parse(patientID int, svc *repo.Service) (*repo.ServiceUsage, error) {
	if patientID <= 0 {
		return nil, &validate.Error{Field: "patient_id", Message: "Invalid Patient ID. Must be numeric."}
	}
	if svc == nil {
		return nil, &validate.Error{Field: "service_id", Message: "Invalid Service ID. No service given."}
	}
	if err := validate.ID("Service ID", svc.ID); err != nil {
		return nil, err
	}
	if err := validate.ServiceName(svc.Name); err != nil {
		return nil, err
	}
	if svc.Cost < validate.MinCost || svc.Cost > validate.MaxCost {
		return nil, &validate.Error{
			Field:   "cost",
			Message: fmt.Sprintf("Invalid Cost. Must be a number between %d and %d.", validate.MinCost, validate.MaxCost),
		}
	}
	return &repo.ServiceUsage{
		PatientID:   patientID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Cost:        svc.Cost,
	}, nil
}
