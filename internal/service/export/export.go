// Package export dumps record tables to CSV or XLSX files.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"

	"github.com/Alijeyrad/hospital_records/internal/repo"
)

type Kind string

const (
	Billing      Kind = "billing"
	Appointments Kind = "appointments"
	Patients     Kind = "patients"
	Doctors      Kind = "doctors"
	Services     Kind = "services"
)

// Kinds lists every exportable table.
var Kinds = []Kind{Billing, Appointments, Patients, Doctors, Services}

var baseNames = map[Kind]string{
	Billing:      "billing_summary",
	Appointments: "appointment_summary",
	Patients:     "patients",
	Doctors:      "doctors",
	Services:     "services",
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := baseNames[k]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
	}
	return k, nil
}

// DefaultFileName is the file an export of k in format f is written to when
// no path is given.
func DefaultFileName(k Kind, f Format) string {
	return baseNames[k] + "." + string(f)
}

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", CSV:
		return CSV, nil
	case XLSX:
		return XLSX, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// Request selects what to export and where. An empty Path uses the kind's
// default file name in the export directory.
type Request struct {
	Kind   Kind
	Path   string
	Format Format
}

type Result struct {
	Path string
	Rows int
}

// ---------------------------------------------------------------------------
// Sources
// ---------------------------------------------------------------------------

type PatientLister interface {
	List(ctx context.Context) ([]*repo.Patient, error)
}

type DoctorLister interface {
	List(ctx context.Context) ([]*repo.Doctor, error)
}

type ServiceLister interface {
	List(ctx context.Context) ([]*repo.Service, error)
}

type AppointmentLister interface {
	List(ctx context.Context) ([]*repo.Appointment, error)
}

type BillLister interface {
	List(ctx context.Context) ([]*repo.Bill, error)
}

// Sources are the record services the exports read from.
type Sources struct {
	Patients     PatientLister
	Doctors      DoctorLister
	Services     ServiceLister
	Appointments AppointmentLister
	Bills        BillLister
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	// Export writes every row of the requested table. An empty table yields
	// ErrNoRecords and no file.
	Export(ctx context.Context, req Request) (*Result, error)
}

type exportService struct {
	src Sources
	dir string
}

func New(src Sources, dir string) Service {
	if dir == "" {
		dir = "."
	}
	return &exportService{src: src, dir: dir}
}

func (s *exportService) Export(ctx context.Context, req Request) (*Result, error) {
	if _, ok := baseNames[req.Kind]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, req.Kind)
	}
	format := req.Format
	if format == "" {
		format = CSV
	}
	if format != CSV && format != XLSX {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	rows, n, err := s.rows(ctx, req.Kind)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecords, req.Kind)
	}

	path := s.resolve(req.Kind, req.Path, format)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	switch format {
	case XLSX:
		err = writeXLSX(path, string(req.Kind), rows)
	default:
		err = writeCSV(path, rows)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", req.Kind, err)
	}

	slog.Info("table exported", "kind", req.Kind, "format", format, "path", path, "rows", n)
	return &Result{Path: path, Rows: n}, nil
}

// rows loads the table and returns its CSV row slice and length.
func (s *exportService) rows(ctx context.Context, kind Kind) (any, int, error) {
	switch kind {
	case Billing:
		bills, err := s.src.Bills.List(ctx)
		if err != nil {
			return nil, 0, err
		}
		return billingRows(bills), len(bills), nil
	case Appointments:
		appts, err := s.src.Appointments.List(ctx)
		if err != nil {
			return nil, 0, err
		}
		return appointmentRows(appts), len(appts), nil
	case Patients:
		patients, err := s.src.Patients.List(ctx)
		if err != nil {
			return nil, 0, err
		}
		return patientRows(patients), len(patients), nil
	case Doctors:
		doctors, err := s.src.Doctors.List(ctx)
		if err != nil {
			return nil, 0, err
		}
		return doctorRows(doctors), len(doctors), nil
	case Services:
		services, err := s.src.Services.List(ctx)
		if err != nil {
			return nil, 0, err
		}
		return serviceRows(services), len(services), nil
	}
	return nil, 0, fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// resolve applies the default name, forces the format's extension and
// places relative paths in the export directory.
func (s *exportService) resolve(kind Kind, path string, format Format) string {
	if strings.TrimSpace(path) == "" {
		path = baseNames[kind]
	}
	ext := "." + string(format)
	if !strings.EqualFold(filepath.Ext(path), ext) {
		path += ext
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	return path
}

func writeCSV(path string, rows any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(rows, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeXLSX(path, sheet string, rows any) error {
	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return err
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return err
	}

	xlsx := excelize.NewFile()
	xlsx.SetSheetName("Sheet1", sheet)
	for r, record := range records {
		for c, cell := range record {
			axis := excelize.ToAlphaString(c) + strconv.Itoa(r+1)
			xlsx.SetCellValue(sheet, axis, cell)
		}
	}
	return xlsx.SaveAs(path)
}
