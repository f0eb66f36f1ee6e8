package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Invoice.Directory != filepath.Join("output", "invoices") {
		t.Errorf("Invoice.Directory = %q", cfg.Invoice.Directory)
	}
	if cfg.Invoice.DueDays != 30 {
		t.Errorf("Invoice.DueDays = %d, want 30", cfg.Invoice.DueDays)
	}
}

func TestReadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `
database:
  driver: sqlite3
  path: /tmp/records.db
invoice:
  directory: out/inv
validation:
  phone_region: IN
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOSPITAL_INVOICE_DIRECTORY", "env/inv")

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite3" || cfg.Database.Path != "/tmp/records.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Invoice.Directory != "env/inv" {
		t.Errorf("Invoice.Directory = %q, want env override", cfg.Invoice.Directory)
	}
	if cfg.Validation.PhoneRegion != "IN" {
		t.Errorf("Validation.PhoneRegion = %q", cfg.Validation.PhoneRegion)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid sqlite",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: "not supported",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name: "email without sender",
			mutate: func(c *Config) {
				c.Email.Enabled = true
			},
			wantErr: "email.from",
		},
		{
			name: "archive without bucket",
			mutate: func(c *Config) {
				c.Archive.Enabled = true
			},
			wantErr: "archive.bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Database: DatabaseConfig{Driver: "sqlite3", Path: "x.db"},
				Invoice:  InvoiceConfig{Directory: "out"},
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
