// Package billing turns a patient's staged services into a bill and renders
// the bill's invoice.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/schema"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
	"github.com/Alijeyrad/hospital_records/internal/service/usage"
	"github.com/Alijeyrad/hospital_records/internal/validate"
	"github.com/Alijeyrad/hospital_records/pkg/email"
	"github.com/Alijeyrad/hospital_records/pkg/util/codes"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Input is a bill as typed by the operator. An empty BillingDate means today.
type Input struct {
	ID          string
	PatientID   string
	BillingDate string
}

// AddResult reports a created bill. The bill stands even when the later
// steps fail; their errors are carried here instead of being returned.
type AddResult struct {
	Bill     *repo.Bill
	Services []*repo.BilledService
	// Skipped lists service ids already recorded on the bill.
	Skipped []string

	ClearErr error

	InvoicePath string
	InvoiceErr  error
}

// Totals is a patient's live, not yet billed, balance.
type Totals struct {
	Services   float64
	Consulting float64
	Total      float64
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	NextID(ctx context.Context) (string, error)

	// Add bills every staged service of the patient and clears the staging
	// rows afterwards. The steps are not atomic.
	Add(ctx context.Context, in Input) (*AddResult, error)
	// Update moves a bill to another patient or date. The total is frozen at
	// creation and is left untouched.
	Update(ctx context.Context, in Input) (*repo.Bill, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*repo.Bill, error)
	List(ctx context.Context) ([]*repo.Bill, error)
	ListForPatient(ctx context.Context, patientID int) ([]*repo.Bill, error)
	BilledServices(ctx context.Context, billID string) ([]*repo.BilledService, error)

	// ComputeTotal sums staged services and every appointment's consulting
	// charge of the patient.
	ComputeTotal(ctx context.Context, patientID int) (*Totals, error)

	Invoice(ctx context.Context, billID string) (*Invoice, error)
	RenderInvoice(inv *Invoice) string
	// WriteInvoice renders the invoice into the invoice directory and returns
	// the file path.
	WriteInvoice(ctx context.Context, billID string) (string, error)
	SendInvoice(ctx context.Context, billID, to string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type billingService struct {
	db       *repo.Client
	usage    usage.Service
	renderer *Renderer
	dir      string
	hospital string
	mailer   *email.Client
	now      func() time.Time
}

type Option func(*billingService)

// WithClock replaces time.Now for default billing dates.
func WithClock(now func() time.Time) Option {
	return func(s *billingService) { s.now = now }
}

// WithMailer enables SendInvoice.
func WithMailer(m *email.Client) Option {
	return func(s *billingService) { s.mailer = m }
}

func New(db *repo.Client, staged usage.Service, cfg config.InvoiceConfig, opts ...Option) Service {
	s := &billingService{
		db:       db,
		usage:    staged,
		renderer: NewRenderer(cfg),
		dir:      lo.Ternary(cfg.Directory == "", filepath.Join("output", "invoices"), cfg.Directory),
		hospital: cfg.HospitalName,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var columns = []string{
	schema.BillFieldID,
	schema.BillFieldPatientID,
	schema.BillFieldTotalAmount,
	schema.BillFieldBillingDate,
}

func (s *billingService) NextID(ctx context.Context) (string, error) {
	var ids []string
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(schema.BillFieldID).
			From(b.Table(schema.BillTable)).
			Where(sql.HasPrefix(schema.BillFieldID, codes.Bill.Prefix))
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
		return "", fmt.Errorf("next bill id: %w", err)
	}
	return codes.Bill.Next(ids), nil
}

func (s *billingService) Add(ctx context.Context, in Input) (*AddResult, error) {
	bill, err := s.parse(in)
	if err != nil {
		return nil, err
	}

	staged, err := s.usage.List(ctx, bill.PatientID)
	if err != nil {
		return nil, err
	}
	if len(staged) == 0 {
		return nil, fmt.Errorf("%w '%d'", ErrNothingToBill, bill.PatientID)
	}
	bill.TotalAmount = lo.SumBy(staged, func(u *repo.ServiceUsage) float64 { return u.Cost })

	res := &AddResult{Bill: bill}
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		if err := s.requirePatient(ctx, c, bill.PatientID); err != nil {
			return err
		}

		_, err := c.Exec(ctx, c.Builder().Insert(schema.BillTable).
			Columns(columns...).
			Values(bill.ID, bill.PatientID, bill.TotalAmount, bill.BillingDate))
		if err != nil {
			if repo.IsUniqueViolation(err) {
				return fmt.Errorf("%w '%s'", ErrDuplicateBill, bill.ID)
			}
			return fmt.Errorf("add bill: %w", err)
		}

		for _, u := range staged {
			line := &repo.BilledService{
				BillID:      bill.ID,
				PatientID:   bill.PatientID,
				ServiceID:   u.ServiceID,
				ServiceName: u.ServiceName,
				Cost:        u.Cost,
			}
			_, err := c.Exec(ctx, c.Builder().Insert(schema.BilledTable).
				Columns(schema.BilledFieldBill, schema.BilledFieldPatient, schema.BilledFieldService, schema.BilledFieldName, schema.BilledFieldCost).
				Values(line.BillID, line.PatientID, line.ServiceID, line.ServiceName, line.Cost))
			if err != nil {
				if repo.IsUniqueViolation(err) {
					slog.Warn("duplicate billed service skipped", "bill_id", bill.ID, "service_id", u.ServiceID)
					res.Skipped = append(res.Skipped, u.ServiceID)
					continue
				}
				return fmt.Errorf("record billed service %s: %w", u.ServiceID, err)
			}
			res.Services = append(res.Services, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("bill created", "bill_id", bill.ID, "patient_id", bill.PatientID, "total", bill.TotalAmount, "services", len(res.Services))

	if _, err := s.usage.Clear(ctx, bill.PatientID); err != nil {
		slog.Error("clear staged services after billing", "bill_id", bill.ID, "patient_id", bill.PatientID, "error", err)
		res.ClearErr = err
	}

	res.InvoicePath, res.InvoiceErr = s.WriteInvoice(ctx, bill.ID)
	return res, nil
}

func (s *billingService) Update(ctx context.Context, in Input) (*repo.Bill, error) {
	bill, err := s.parse(in)
	if err != nil {
		return nil, err
	}

	var affected int64
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		if err := s.requirePatient(ctx, c, bill.PatientID); err != nil {
			return err
		}
		var err error
		affected, err = c.Exec(ctx, c.Builder().Update(schema.BillTable).
			Set(schema.BillFieldPatientID, bill.PatientID).
			Set(schema.BillFieldBillingDate, bill.BillingDate).
			Where(sql.EQ(schema.BillFieldID, bill.ID)))
		if err != nil {
			return fmt.Errorf("update bill: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrBillNotFound, bill.ID)
	}

	slog.Info("bill updated", "bill_id", bill.ID, "patient_id", bill.PatientID)
	return s.Get(ctx, bill.ID)
}

func (s *billingService) Delete(ctx context.Context, id string) error {
	if err := validate.ID("Bill ID", id); err != nil {
		return err
	}

	var affected int64
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		// Child rows first; there are no foreign keys to cascade.
		if _, err := c.Exec(ctx, c.Builder().Delete(schema.BilledTable).
			Where(sql.EQ(schema.BilledFieldBill, id))); err != nil {
			return err
		}
		var err error
		affected, err = c.Exec(ctx, c.Builder().Delete(schema.BillTable).
			Where(sql.EQ(schema.BillFieldID, id)))
		return err
	})
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w '%s'", ErrBillNotFound, id)
	}

	slog.Info("bill deleted", "bill_id", id)
	return nil
}

func (s *billingService) Get(ctx context.Context, id string) (*repo.Bill, error) {
	bills, err := s.query(ctx, sql.EQ(schema.BillFieldID, id))
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if len(bills) == 0 {
		return nil, fmt.Errorf("%w '%s'", ErrBillNotFound, id)
	}
	return bills[0], nil
}

func (s *billingService) List(ctx context.Context) ([]*repo.Bill, error) {
	bills, err := s.query(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

func (s *billingService) ListForPatient(ctx context.Context, patientID int) ([]*repo.Bill, error) {
	bills, err := s.query(ctx, sql.EQ(schema.BillFieldPatientID, patientID), schema.BillFieldBillingDate)
	if err != nil {
		return nil, fmt.Errorf("list patient bills: %w", err)
	}
	if len(bills) == 0 {
		return nil, fmt.Errorf("%w '%d'", ErrNoBills, patientID)
	}
	return bills, nil
}

func (s *billingService) BilledServices(ctx context.Context, billID string) ([]*repo.BilledService, error) {
	var out []*repo.BilledService
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		var err error
		out, err = billedServices(ctx, c, billID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list billed services: %w", err)
	}
	return out, nil
}

func (s *billingService) ComputeTotal(ctx context.Context, patientID int) (*Totals, error) {
	if patientID <= 0 {
		return nil, &validate.Error{Field: "patient_id", Message: "Invalid Patient ID. Must be numeric."}
	}

	services, err := s.usage.Total(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var consulting sql.NullFloat64
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(sql.Sum(schema.AppointmentFieldConsultingCharge)).
			From(b.Table(schema.AppointmentTable)).
			Where(sql.EQ(schema.AppointmentFieldPatientID, patientID))
		return c.Query(ctx, sel, func(r repo.Row) error {
			return r.Scan(&consulting)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("sum consulting charges: %w", err)
	}

	return &Totals{
		Services:   services,
		Consulting: consulting.Float64,
		Total:      services + consulting.Float64,
	}, nil
}

// ---------------------------------------------------------------------------
// Invoices
// ---------------------------------------------------------------------------

func (s *billingService) Invoice(ctx context.Context, billID string) (*Invoice, error) {
	bill, err := s.Get(ctx, billID)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{Bill: *bill}
	err = s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()

		name := b.Select(schema.PatientFieldName).
			From(b.Table(schema.PatientTable)).
			Where(sql.EQ(schema.PatientFieldID, bill.PatientID))
		if err := c.Query(ctx, name, func(r repo.Row) error {
			return r.Scan(&inv.PatientName)
		}); err != nil {
			return err
		}

		a := b.Table(schema.AppointmentTable).As("a")
		d := b.Table(schema.DoctorTable).As("d")
		latest := b.Select(
			a.C(schema.AppointmentFieldDate),
			d.C(schema.DoctorFieldName),
			d.C(schema.DoctorFieldSpecialization),
			a.C(schema.AppointmentFieldConsultingCharge),
		).
			From(a).
			Join(d).On(a.C(schema.AppointmentFieldDoctorID), d.C(schema.DoctorFieldID)).
			Where(sql.EQ(a.C(schema.AppointmentFieldPatientID), bill.PatientID)).
			OrderBy(sql.Desc(a.C(schema.AppointmentFieldDate)), sql.Desc(a.C(schema.AppointmentFieldID))).
			Limit(1)
		if err := c.Query(ctx, latest, func(r repo.Row) error {
			cons := &Consultation{}
			if err := r.Scan(&cons.Date, &cons.DoctorName, &cons.Specialization, &cons.Charge); err != nil {
				return err
			}
			cons.Date = repo.DateOnly(cons.Date)
			inv.Consultation = cons
			return nil
		}); err != nil {
			return err
		}

		var err error
		inv.Services, err = billedServices(ctx, c, bill.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("build invoice: %w", err)
	}
	return inv, nil
}

func (s *billingService) RenderInvoice(inv *Invoice) string {
	return s.renderer.Render(inv)
}

func (s *billingService) WriteInvoice(ctx context.Context, billID string) (string, error) {
	inv, err := s.Invoice(ctx, billID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create invoice directory: %w", err)
	}
	path := filepath.Join(s.dir, inv.FileName())
	if err := os.WriteFile(path, []byte(s.renderer.Render(inv)), 0o644); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}

	slog.Info("invoice written", "bill_id", billID, "path", path)
	return path, nil
}

func (s *billingService) SendInvoice(ctx context.Context, billID, to string) error {
	if !s.mailer.Enabled() {
		return email.ErrDisabled{}
	}

	inv, err := s.Invoice(ctx, billID)
	if err != nil {
		return err
	}

	msg := email.BuildInvoiceEmail(email.InvoiceEmailData{
		To:           to,
		BillID:       inv.Bill.ID,
		PatientName:  inv.PatientName,
		HospitalName: s.hospital,
		FileName:     inv.FileName(),
		Invoice:      s.renderer.Render(inv),
	})
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send invoice: %w", err)
	}

	slog.Info("invoice sent", "bill_id", billID, "to", to)
	return nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (s *billingService) parse(in Input) (*repo.Bill, error) {
	if err := validate.ID("Bill ID", in.ID); err != nil {
		return nil, err
	}
	patientID, err := validate.PatientID(in.PatientID)
	if err != nil {
		return nil, err
	}

	date := repo.DateOnly(s.now())
	if in.BillingDate != "" {
		if date, err = validate.Date("Billing Date", in.BillingDate); err != nil {
			return nil, err
		}
	}

	return &repo.Bill{ID: in.ID, PatientID: patientID, BillingDate: date}, nil
}

func (s *billingService) requirePatient(ctx context.Context, c *repo.Conn, patientID int) error {
	b := c.Builder()
	ok, err := c.Exists(ctx, b.Select(schema.PatientFieldID).
		From(b.Table(schema.PatientTable)).
		Where(sql.EQ(schema.PatientFieldID, patientID)))
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w '%d'", patient.ErrPatientNotFound, patientID)
	}
	return nil
}

func billedServices(ctx context.Context, c *repo.Conn, billID string) ([]*repo.BilledService, error) {
	var out []*repo.BilledService
	b := c.Builder()
	sel := b.Select(schema.BilledFieldBill, schema.BilledFieldPatient, schema.BilledFieldService, schema.BilledFieldName, schema.BilledFieldCost).
		From(b.Table(schema.BilledTable)).
		Where(sql.EQ(schema.BilledFieldBill, billID)).
		OrderBy(schema.BilledFieldService)
	err := c.Query(ctx, sel, func(r repo.Row) error {
		bs := &repo.BilledService{}
		if err := r.Scan(&bs.BillID, &bs.PatientID, &bs.ServiceID, &bs.ServiceName, &bs.Cost); err != nil {
			return err
		}
		out = append(out, bs)
		return nil
	})
	return out, err
}

func (s *billingService) query(ctx context.Context, where *sql.Predicate, orderBy ...string) ([]*repo.Bill, error) {
	var out []*repo.Bill
	err := s.db.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		sel := b.Select(columns...).From(b.Table(schema.BillTable)).
			OrderBy(append(orderBy, schema.BillFieldID)...)
		if where != nil {
			sel.Where(where)
		}
		return c.Query(ctx, sel, func(r repo.Row) error {
			bill := &repo.Bill{}
			if err := r.Scan(&bill.ID, &bill.PatientID, &bill.TotalAmount, &bill.BillingDate); err != nil {
				return err
			}
			bill.BillingDate = repo.DateOnly(bill.BillingDate)
			out = append(out, bill)
			return nil
		})
	})
	return out, err
}
