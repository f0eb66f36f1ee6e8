package billing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/schema"
	"github.com/Alijeyrad/hospital_records/internal/service/appointment"
	"github.com/Alijeyrad/hospital_records/internal/service/doctor"
	"github.com/Alijeyrad/hospital_records/internal/service/patient"
	"github.com/Alijeyrad/hospital_records/internal/service/usage"
	"github.com/Alijeyrad/hospital_records/internal/testutil"
	"github.com/Alijeyrad/hospital_records/internal/validate"
	"github.com/Alijeyrad/hospital_records/pkg/email"
)

type fixture struct {
	db          *repo.Client
	billing     Service
	usage       usage.Service
	patients    patient.Service
	doctors     doctor.Service
	appointment appointment.Service
	dir         string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewClient(t)
	dir := filepath.Join(t.TempDir(), "invoices")
	staged := usage.New(db)
	clock := func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

	return &fixture{
		db:          db,
		billing:     New(db, staged, testInvoiceConfig(dir), WithClock(clock)),
		usage:       staged,
		patients:    patient.New(db, validate.New("")),
		doctors:     doctor.New(db, validate.New("")),
		appointment: appointment.New(db),
		dir:         dir,
	}
}

func (f *fixture) addPatient(t *testing.T, id int) {
	t.Helper()
	_, err := f.patients.Add(context.Background(), id, patient.Input{
		Name:          "Jane Doe",
		Age:           "34",
		Gender:        "F",
		AdmissionDate: "2024-01-01",
		ContactNo:     "9876543210",
	})
	require.NoError(t, err)
}

func (f *fixture) stage(t *testing.T, patientID int, services ...*repo.Service) {
	t.Helper()
	for _, svc := range services {
		_, err := f.usage.Add(context.Background(), patientID, svc)
		require.NoError(t, err)
	}
}

var (
	serviceX = &repo.Service{ID: "S1", Name: "X", Cost: 100}
	serviceY = &repo.Service{ID: "S2", Name: "Y", Cost: 50}
)

func TestAddBillsStagedServices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addPatient(t, 1001)
	f.stage(t, 1001, serviceX, serviceY)

	id, err := f.billing.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B001", id)

	res, err := f.billing.Add(ctx, Input{ID: id, PatientID: "1001"})
	require.NoError(t, err)
	assert.Equal(t, 150.0, res.Bill.TotalAmount)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), res.Bill.BillingDate)
	assert.Len(t, res.Services, 2)
	assert.Empty(t, res.Skipped)
	assert.NoError(t, res.ClearErr)
	require.NoError(t, res.InvoiceErr)

	billed, err := f.billing.BilledServices(ctx, "B001")
	require.NoError(t, err)
	require.Len(t, billed, 2)
	assert.Equal(t, "S1", billed[0].ServiceID)
	assert.Equal(t, 1001, billed[0].PatientID)

	staged, err := f.usage.List(ctx, 1001)
	require.NoError(t, err)
	assert.Empty(t, staged)

	stored, err := f.billing.Get(ctx, "B001")
	require.NoError(t, err)
	assert.Equal(t, 150.0, stored.TotalAmount)

	assert.Equal(t, filepath.Join(f.dir, "bill_1001.txt"), res.InvoicePath)
	data, err := os.ReadFile(res.InvoicePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name: Jane Doe")
	assert.Contains(t, string(data), "TOTAL AMOUNT DUE : ₹150.00")
}

func TestAddRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing staged", func(t *testing.T) {
		f := newFixture(t)
		f.addPatient(t, 1001)

		_, err := f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001"})
		assert.ErrorIs(t, err, ErrNothingToBill)
	})

	t.Run("unknown patient keeps staging", func(t *testing.T) {
		f := newFixture(t)
		f.stage(t, 2002, serviceX)

		_, err := f.billing.Add(ctx, Input{ID: "B001", PatientID: "2002"})
		assert.ErrorIs(t, err, patient.ErrPatientNotFound)
		assert.ErrorIs(t, err, repo.ErrNotFound)

		staged, err := f.usage.List(ctx, 2002)
		require.NoError(t, err)
		assert.Len(t, staged, 1)
	})

	t.Run("duplicate bill id", func(t *testing.T) {
		f := newFixture(t)
		f.addPatient(t, 1001)
		f.stage(t, 1001, serviceX)
		_, err := f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001"})
		require.NoError(t, err)

		f.stage(t, 1001, serviceY)
		_, err = f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001"})
		assert.ErrorIs(t, err, ErrDuplicateBill)
		assert.ErrorIs(t, err, repo.ErrDuplicateKey)

		original, err := f.billing.Get(ctx, "B001")
		require.NoError(t, err)
		assert.Equal(t, 100.0, original.TotalAmount)
	})

	t.Run("validation before any query", func(t *testing.T) {
		f := newFixture(t)
		tests := []struct {
			in    Input
			field string
		}{
			{Input{ID: "B-1", PatientID: "1001"}, "bill_id"},
			{Input{ID: "B001", PatientID: "abc"}, "patient_id"},
			{Input{ID: "B001", PatientID: "1001", BillingDate: "2024-02-30"}, "billing_date"},
		}
		for _, tt := range tests {
			_, err := f.billing.Add(ctx, tt.in)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		}
	})
}

// failingClear stages and lists normally but cannot clear.
type failingClear struct {
	usage.Service
}

func (failingClear) Clear(context.Context, int) (int64, error) {
	return 0, errors.New("staging table locked")
}

func TestAddPartialOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("existing billed line is skipped", func(t *testing.T) {
		f := newFixture(t)
		f.addPatient(t, 1001)
		f.stage(t, 1001, serviceX, serviceY)

		// A leftover line for the bill id that is about to be used.
		err := f.db.WithConn(ctx, func(c *repo.Conn) error {
			_, err := c.Exec(ctx, c.Builder().Insert(schema.BilledTable).
				Columns(schema.BilledFieldBill, schema.BilledFieldPatient, schema.BilledFieldService, schema.BilledFieldName, schema.BilledFieldCost).
				Values("B001", 1001, "S1", "X", 100.0))
			return err
		})
		require.NoError(t, err)

		res, err := f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001"})
		require.NoError(t, err)
		assert.Equal(t, []string{"S1"}, res.Skipped)
		require.Len(t, res.Services, 1)
		assert.Equal(t, "S2", res.Services[0].ServiceID)
		assert.Equal(t, 150.0, res.Bill.TotalAmount)
		assert.NoError(t, res.ClearErr)

		staged, err := f.usage.List(ctx, 1001)
		require.NoError(t, err)
		assert.Empty(t, staged)
	})

	t.Run("failed clear keeps the bill", func(t *testing.T) {
		f := newFixture(t)
		f.addPatient(t, 1001)
		f.stage(t, 1001, serviceX, serviceY)

		svc := New(f.db, failingClear{f.usage}, testInvoiceConfig(f.dir))
		res, err := svc.Add(ctx, Input{ID: "B001", PatientID: "1001", BillingDate: "2024-01-10"})
		require.NoError(t, err)
		assert.Error(t, res.ClearErr)
		assert.Len(t, res.Services, 2)

		stored, err := svc.Get(ctx, "B001")
		require.NoError(t, err)
		assert.Equal(t, 150.0, stored.TotalAmount)

		staged, err := f.usage.List(ctx, 1001)
		require.NoError(t, err)
		assert.Len(t, staged, 2)
	})
}

func TestUpdateKeepsTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addPatient(t, 1001)
	f.addPatient(t, 1002)
	f.stage(t, 1001, serviceX, serviceY)
	_, err := f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001", BillingDate: "2024-01-10"})
	require.NoError(t, err)

	bill, err := f.billing.Update(ctx, Input{ID: "B001", PatientID: "1002", BillingDate: "2024-01-12"})
	require.NoError(t, err)
	assert.Equal(t, 1002, bill.PatientID)
	assert.Equal(t, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), bill.BillingDate)
	assert.Equal(t, 150.0, bill.TotalAmount)

	_, err = f.billing.Update(ctx, Input{ID: "B404", PatientID: "1001"})
	assert.ErrorIs(t, err, ErrBillNotFound)

	_, err = f.billing.Update(ctx, Input{ID: "B001", PatientID: "9999"})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestDeleteRemovesBilledServices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addPatient(t, 1001)
	f.stage(t, 1001, serviceX, serviceY)
	_, err := f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001"})
	require.NoError(t, err)

	require.NoError(t, f.billing.Delete(ctx, "B001"))

	billed, err := f.billing.BilledServices(ctx, "B001")
	require.NoError(t, err)
	assert.Empty(t, billed)

	err = f.billing.Delete(ctx, "B001")
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestListForPatient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addPatient(t, 1001)

	_, err := f.billing.ListForPatient(ctx, 1001)
	assert.ErrorIs(t, err, ErrNoBills)

	f.stage(t, 1001, serviceX)
	_, err = f.billing.Add(ctx, Input{ID: "B002", PatientID: "1001", BillingDate: "2024-02-01"})
	require.NoError(t, err)
	f.stage(t, 1001, serviceY)
	_, err = f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001", BillingDate: "2024-01-01"})
	require.NoError(t, err)

	bills, err := f.billing.ListForPatient(ctx, 1001)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "B001", bills[0].ID)
	assert.Equal(t, "B002", bills[1].ID)

	all, err := f.billing.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestComputeTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.stage(t, 1001, serviceX)

	appts := []appointment.Input{
		{PatientID: "1001", DoctorID: "D001", Date: "2024-01-01", Diagnosis: "Checkup", ConsultingCharge: "300"},
		{PatientID: "1001", DoctorID: "D001", Date: "2024-01-02", Diagnosis: "Checkup", ConsultingCharge: "200"},
		{PatientID: "2002", DoctorID: "D001", Date: "2024-01-02", Diagnosis: "Checkup", ConsultingCharge: "999"},
	}
	for _, in := range appts {
		id, err := f.appointment.NextID(ctx)
		require.NoError(t, err)
		_, err = f.appointment.Add(ctx, id, in)
		require.NoError(t, err)
	}

	totals, err := f.billing.ComputeTotal(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, &Totals{Services: 100, Consulting: 500, Total: 600}, totals)

	other, err := f.billing.ComputeTotal(ctx, 2002)
	require.NoError(t, err)
	assert.Equal(t, &Totals{Consulting: 999, Total: 999}, other)

	none, err := f.billing.ComputeTotal(ctx, 3003)
	require.NoError(t, err)
	assert.Zero(t, none.Total)
}

func TestInvoiceUsesLatestAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addPatient(t, 1001)

	_, err := f.doctors.Add(ctx, "D001", doctor.Input{Name: "Gregory House", Specialization: "Diagnostics", ContactNo: "9876543210"})
	require.NoError(t, err)
	_, err = f.doctors.Add(ctx, "D002", doctor.Input{Name: "Lisa Cuddy", Specialization: "Endocrinology", ContactNo: "9876543211"})
	require.NoError(t, err)

	_, err = f.appointment.Add(ctx, "A001", appointment.Input{PatientID: "1001", DoctorID: "D001", Date: "2024-01-01", Diagnosis: "Fever", ConsultingCharge: "300"})
	require.NoError(t, err)
	_, err = f.appointment.Add(ctx, "A002", appointment.Input{PatientID: "1001", DoctorID: "D002", Date: "2024-02-01", Diagnosis: "Follow-up", ConsultingCharge: "450"})
	require.NoError(t, err)

	f.stage(t, 1001, serviceX, serviceY)
	_, err = f.billing.Add(ctx, Input{ID: "B001", PatientID: "1001"})
	require.NoError(t, err)

	inv, err := f.billing.Invoice(ctx, "B001")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", inv.PatientName)
	require.NotNil(t, inv.Consultation)
	assert.Equal(t, "Lisa Cuddy", inv.Consultation.DoctorName)
	assert.Equal(t, 450.0, inv.Consultation.Charge)
	assert.Equal(t, 600.0, inv.Total())

	text := f.billing.RenderInvoice(inv)
	assert.True(t, strings.Contains(text, "Doctor      : Lisa Cuddy (Endocrinology)"))

	_, err = f.billing.Invoice(ctx, "B404")
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestSendInvoiceDisabled(t *testing.T) {
	f := newFixture(t)
	err := f.billing.SendInvoice(context.Background(), "B001", "p@example.com")
	assert.True(t, errors.As(err, &email.ErrDisabled{}))
}
