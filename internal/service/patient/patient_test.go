package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/testutil"
	"github.com/Alijeyrad/hospital_records/internal/validate"
)

func validInput() Input {
	return Input{
		Name:          "John Doe",
		Age:           "45",
		Gender:        "M",
		AdmissionDate: "2024-01-01",
		ContactNo:     "9876543210",
	}
}

func newService(t *testing.T, opts ...Option) Service {
	t.Helper()
	return New(testutil.NewClient(t), validate.New(""), opts...)
}

func TestAddThenList(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	id, err := svc.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1001, id)

	_, err = svc.Add(ctx, id, validInput())
	require.NoError(t, err)

	patients, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)

	p := patients[0]
	assert.Equal(t, 1001, p.ID)
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, 45, p.Age)
	assert.Equal(t, "M", p.Gender)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.AdmissionDate)
	assert.Equal(t, "9876543210", p.ContactNo)

	next, err := svc.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1002, next)
}

func TestAddDuplicateKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Add(ctx, 1001, validInput())
	require.NoError(t, err)

	other := validInput()
	other.Name = "Someone Else"
	_, err = svc.Add(ctx, 1001, other)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicatePatient))
	assert.True(t, errors.Is(err, repo.ErrDuplicateKey))

	p, err := svc.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", p.Name)
}

func TestUpdateMissingReportsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Add(ctx, 1001, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2000, validInput())
	assert.True(t, errors.Is(err, ErrPatientNotFound))
	assert.True(t, errors.Is(err, repo.ErrNotFound))

	p, err := svc.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", p.Name)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Add(ctx, 1001, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Age = "46"
	in.Gender = "Other"
	_, err = svc.Update(ctx, 1001, in)
	require.NoError(t, err)

	p, err := svc.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 46, p.Age)
	assert.Equal(t, "Other", p.Gender)

	require.NoError(t, svc.Delete(ctx, 1001))
	assert.True(t, errors.Is(svc.Delete(ctx, 1001), ErrPatientNotFound))

	patients, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients)
}

func TestValidationRunsBeforeDatabase(t *testing.T) {
	client := testutil.NewClient(t)
	svc := New(client, validate.New(""))
	// A closed pool fails every statement, so only validation can answer.
	require.NoError(t, client.Close())

	tests := []struct {
		name  string
		edit  func(*Input)
		field string
	}{
		{"name", func(in *Input) { in.Name = "J0hn" }, "name"},
		{"age", func(in *Input) { in.Age = "130" }, "age"},
		{"gender", func(in *Input) { in.Gender = "X" }, "gender"},
		{"date", func(in *Input) { in.AdmissionDate = "01/01/2024" }, "admission_date"},
		{"contact", func(in *Input) { in.ContactNo = "12345" }, "contact_no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.edit(&in)

			_, err := svc.Add(context.Background(), 1001, in)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSearchByName(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	names := []string{"John Doe", "Jane Doe", "Mary Major"}
	for i, n := range names {
		in := validInput()
		in.Name = n
		_, err := svc.Add(ctx, 1001+i, in)
		require.NoError(t, err)
	}

	found, err := svc.SearchByName(ctx, "doe")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, 1001, found[0].ID)
	assert.Equal(t, 1002, found[1].ID)
}

func TestDaysAdmitted(t *testing.T) {
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2024, 1, 11, 15, 30, 0, 0, time.UTC) }
	svc := newService(t, WithClock(clock))

	_, err := svc.Add(ctx, 1001, validInput())
	require.NoError(t, err)

	days, err := svc.DaysAdmitted(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 10, days)

	_, err = svc.DaysAdmitted(ctx, 999)
	assert.True(t, errors.Is(err, ErrPatientNotFound))
}

func TestDaysAdmittedCountsUTCDays(t *testing.T) {
	ctx := context.Background()
	// 01:00 on Jan 11 at +05:00 is still Jan 10 in UTC.
	east := time.FixedZone("UTC+5", 5*60*60)
	clock := func() time.Time { return time.Date(2024, 1, 11, 1, 0, 0, 0, east) }
	svc := newService(t, WithClock(clock))

	_, err := svc.Add(ctx, 1001, validInput())
	require.NoError(t, err)

	days, err := svc.DaysAdmitted(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 9, days)
}
