package repo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/schema"
	"github.com/Alijeyrad/hospital_records/internal/testutil"
)

func insertDoctor(ctx context.Context, c *repo.Conn, id string) error {
	_, err := c.Exec(ctx, c.Builder().Insert(schema.DoctorTable).
		Columns(schema.DoctorFieldID, schema.DoctorFieldName, schema.DoctorFieldSpecialization, schema.DoctorFieldContactNo).
		Values(id, "Dr. Rao", "Cardiology", "9876543210"))
	return err
}

func TestWithConn_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewClient(t)

	err := client.WithConn(ctx, func(c *repo.Conn) error {
		if err := insertDoctor(ctx, c, "D001"); err != nil {
			return err
		}

		var names []string
		b := c.Builder()
		sel := b.Select(schema.DoctorFieldName).From(b.Table(schema.DoctorTable))
		if err := c.Query(ctx, sel, func(r repo.Row) error {
			var name string
			if err := r.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
			return nil
		}); err != nil {
			return err
		}
		if len(names) != 1 || names[0] != "Dr. Rao" {
			return fmt.Errorf("names = %v", names)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithConn() error = %v", err)
	}
}

func TestWithConn_PropagatesCallbackError(t *testing.T) {
	client := testutil.NewClient(t)
	want := errors.New("boom")

	err := client.WithConn(context.Background(), func(*repo.Conn) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("WithConn() error = %v, want %v", err, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewClient(t)

	var dupErr error
	err := client.WithConn(ctx, func(c *repo.Conn) error {
		if err := insertDoctor(ctx, c, "D001"); err != nil {
			return err
		}
		dupErr = insertDoctor(ctx, c, "D001")
		return nil
	})
	if err != nil {
		t.Fatalf("WithConn() error = %v", err)
	}

	if !repo.IsUniqueViolation(dupErr) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", dupErr)
	}
	if !repo.IsConstraintError(dupErr) {
		t.Errorf("IsConstraintError(%v) = false, want true", dupErr)
	}
	if repo.IsUniqueViolation(errors.New("plain")) || repo.IsUniqueViolation(nil) {
		t.Error("IsUniqueViolation() should be false for non-driver errors")
	}
}

func TestHint(t *testing.T) {
	errBill := repo.DuplicateIDError("duplicate bill ID")
	errStaged := repo.DuplicateError("service already staged")

	wrapped := fmt.Errorf("%w 'B001'", errBill)
	if got := repo.Hint(wrapped); got != "Please use a unique ID." {
		t.Errorf("Hint(%v) = %q, want unique ID hint", wrapped, got)
	}
	if !errors.Is(wrapped, repo.ErrDuplicateKey) {
		t.Errorf("errors.Is(%v, ErrDuplicateKey) = false, want true", wrapped)
	}
	if got := repo.Hint(fmt.Errorf("%w: 'S01'", errStaged)); got != "" {
		t.Errorf("Hint() for staged duplicate = %q, want empty", got)
	}
	if got := repo.Hint(errors.New("plain")); got != "" {
		t.Errorf("Hint(plain) = %q, want empty", got)
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewClient(t)

	err := client.WithConn(ctx, func(c *repo.Conn) error {
		b := c.Builder()
		t1 := b.Table(schema.DoctorTable)
		found, err := c.Exists(ctx, b.Select(schema.DoctorFieldID).From(t1))
		if err != nil {
			return err
		}
		if found {
			return errors.New("empty table reported a row")
		}
		if err := insertDoctor(ctx, c, "D001"); err != nil {
			return err
		}
		t2 := b.Table(schema.DoctorTable)
		found, err = c.Exists(ctx, b.Select(schema.DoctorFieldID).From(t2))
		if err != nil {
			return err
		}
		if !found {
			return errors.New("row not found after insert")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
