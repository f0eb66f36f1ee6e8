// Package catalog manages the billable services hospital staff can stage
// for a patient.
package catalog

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

// Input is a catalog entry as typed by the operator.
type Input struct {
	Name string
	Cost string
}

type Service interface {
	NextID(ctx context.Context) (string, error)
	Add(ctx context.Context, id string, in Input) (*repo.Service, error)
	Update(ctx context.Context, id string, in Input) (*repo.Service, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*repo.Service, error)
	List(ctx context.Context) ([]*repo.Service, error)
}

type catalogService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &catalogService{db: db}
}

var columns = []string{
	schema.ServiceFieldID,
	schema.ServiceFieldName,
	schema.ServiceFieldCost,
}

func (s *catalogService) NextID(ctx context.Context) (string, error) {
	var ids []string
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(schema.ServiceFieldID).
			From(b.Table(schema.ServiceTable)).
			Where(sql.HasPrefix(schema.ServiceFieldID, codes.Service.Prefix))
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
		return "", fmt.Errorf("next service id: %w", err)
	}
	return codes.Service.Next(ids), nil
}

func (s *catalogService) Add(ctx context.Context, id string, in Input) (*repo.Service, error) {
	svc, err := parse(id, in)
	if err != nil {
		return nil, err
	}

	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		_, err := c.Exec(ctx, c.Builder().Insert(schema.ServiceTable).
			Columns(columns...).
			Values(svc.ID, svc.Name, svc.Cost))
		return err
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w '%s'", ErrDuplicateService, id)
		}
		return nil, fmt.Errorf("add service: %w", err)
	}

	slog.Info("service added", "service_id", svc.ID, "cost", svc.Cost)
	return svc, nil
}

func (s *catalogService) Update(ctx context.Context, id string, in Input) (*repo.Service, error) {
	svc, err := parse(id, in)
	if err != nil {
		return nil, err
	}

	var affected int64
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Update(schema.ServiceTable).
			Set(schema.ServiceFieldName, svc.Name).
			Set(schema.ServiceFieldCost, svc.Cost).
			Where(sql.EQ(schema.ServiceFieldID, id)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrServiceNotFound, id)
	}

	slog.Info("service updated", "service_id", id)
	return svc, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	var affected int64
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		affected, err = c.Exec(ctx, c.Builder().Delete(schema.ServiceTable).
			Where(sql.EQ(schema.ServiceFieldID, id)))
		return err
	})
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w '%s'", ErrServiceNotFound, id)
	}

	slog.Info("service deleted", "service_id", id)
	return nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*repo.Service, error) {
	services, err := s.query(ctx, sql.EQ(schema.ServiceFieldID, id))
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrServiceNotFound, id)
	}
	return services[0], nil
}

func (s *catalogService) List(ctx context.Context) ([]*repo.Service, error) {
	services, err := s.query(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func parse(id string, in Input) (*repo.Service, error) {
	if err := validate.ID("Service ID", id); err != nil {
		return nil, err
	}
	if err := validate.ServiceName(in.Name); err != nil {
		return nil, err
	}
	cost, err := validate.Cost(in.Cost)
	if err != nil {
		return nil, err
	}
	return &repo.Service{ID: id, Name: in.Name, Cost: cost}, nil
}

func (s *catalogService) query(ctx context.Context, where *sql.Predicate) ([]*repo.Service, error) {
	var out []*repo.Service
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(columns...).From(b.Table(schema.ServiceTable)).OrderBy(schema.ServiceFieldID)
		if where != nil {
			sel.Where(where)
		}
		return c.Query(ctx, sel, func(r repo.Row) error {
			svc := &repo.Service{}
			if err := r.Scan(&svc.ID, &svc.Name, &svc.Cost); err != nil {
				return err
			}
			out = append(out, svc)
			return nil
		})
	})
	return out, err
}
