package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/service/appointment"
	"github.com/Alijeyrad/hospital_records/internal/service/billing"
	"github.com/Alijeyrad/hospital_records/internal/service/catalog"
	"github.com/Alijeyrad/hospital_records/internal/service/doctor"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
	"github.com/Alijeyrad/hospital_records/internal/service/usage"
	"github.com/Alijeyrad/hospital_records/internal/testutil"
	"github.com/Alijeyrad/hospital_records/internal/validate"
)

type fixture struct {
	exports  Service
	patients patient.Service
	catalog  catalog.Service
	appts    appointment.Service
	usage    usage.Service
	billing  billing.Service
	dir      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewClient(t)
	dir := t.TempDir()
	v := validate.New("")

	f := &fixture{
		patients: patient.New(db, v),
		catalog:  catalog.New(db),
		appts:    appointment.New(db),
		usage:    usage.New(db),
		dir:      dir,
	}
	f.billing = billing.New(db, f.usage, config.InvoiceConfig{Directory: filepath.Join(dir, "invoices")})
	f.exports = New(Sources{
		Patients:     f.patients,
		Doctors:      doctor.New(db, v),
		Services:     f.catalog,
		Appointments: f.appts,
		Bills:        f.billing,
	}, dir)
	return f
}

func TestExportEmptyTableWritesNothing(t *testing.T) {
	f := newFixture(t)

	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			_, err := f.exports.Export(context.Background(), Request{Kind: kind})
			assert.ErrorIs(t, err, ErrNoRecords)
		})
	}

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportBillingSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.patients.Add(ctx, 1001, patient.Input{Name: "Jane Doe", Age: "34", Gender: "F", AdmissionDate: "2024-01-01", ContactNo: "9876543210"})
	require.NoError(t, err)
	_, err = f.usage.Add(ctx, 1001, &repo.Service{ID: "S1", Name: "X", Cost: 100})
	require.NoError(t, err)
	_, err = f.usage.Add(ctx, 1001, &repo.Service{ID: "S2", Name: "Y", Cost: 50})
	require.NoError(t, err)
	_, err = f.billing.Add(ctx, billing.Input{ID: "B001", PatientID: "1001", BillingDate: "2024-01-10"})
	require.NoError(t, err)

	res, err := f.exports.Export(ctx, Request{Kind: Billing})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "billing_summary.csv"), res.Path)
	assert.Equal(t, 1, res.Rows)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "Bill ID,Patient ID,Total Amount,Billing Date\nB001,1001,150.00,2024-01-10\n", string(data))
}

func TestExportAppointmentsInTableOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, in := range []appointment.Input{
		{PatientID: "1001", DoctorID: "D001", Date: "2024-01-05", Diagnosis: "Fever", ConsultingCharge: "300"},
		{PatientID: "1002", DoctorID: "D002", Date: "2024-01-01", Diagnosis: "Cough"},
	} {
		id, err := f.appts.NextID(ctx)
		require.NoError(t, err)
		_, err = f.appts.Add(ctx, id, in)
		require.NoError(t, err)
	}

	res, err := f.exports.Export(ctx, Request{Kind: Appointments, Path: "appts"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "appts.csv"), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"Appointment ID,Patient ID,Doctor ID,Date,Diagnosis,Consulting Charge\n"+
			"A001,1001,D001,2024-01-05,Fever,300.00\n"+
			"A002,1002,D002,2024-01-01,Cough,0.00\n",
		string(data))
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.catalog.Add(ctx, "S01", catalog.Input{Name: "Blood Test", Cost: "100"})
	require.NoError(t, err)

	res, err := f.exports.Export(ctx, Request{Kind: Services, Format: XLSX})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "services.xlsx"), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Greater(t, len(data), 2)
	assert.Equal(t, "PK", string(data[:2]), "xlsx files are zip archives")
}

func TestParse(t *testing.T) {
	k, err := ParseKind(" Billing ")
	require.NoError(t, err)
	assert.Equal(t, Billing, k)

	_, err = ParseKind("wards")
	assert.True(t, errors.Is(err, ErrUnknownKind))

	fm, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, CSV, fm)

	_, err = ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	assert.Equal(t, "billing_summary.csv", DefaultFileName(Billing, CSV))
	assert.Equal(t, "appointment_summary.xlsx", DefaultFileName(Appointments, XLSX))
}

func TestResolve(t *testing.T) {
	s := &exportService{dir: "out"}
	tests := []struct {
		path   string
		format Format
		want   string
	}{
		{"", CSV, filepath.Join("out", "billing_summary.csv")},
		{"report", CSV, filepath.Join("out", "report.csv")},
		{"report.CSV", CSV, filepath.Join("out", "report.CSV")},
		{"report.csv", XLSX, filepath.Join("out", "report.csv.xlsx")},
		{"/tmp/r.csv", CSV, "/tmp/r.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.resolve(Billing, tt.path, tt.format), tt.path)
	}
}
