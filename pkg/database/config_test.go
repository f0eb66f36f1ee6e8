package database

import (
	"strings"
	"testing"
	"time"
)

func TestConfigDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "postgres",
			cfg: Config{
				Driver: "postgres", Host: "db", Port: 5432, User: "u",
				Password: "p", DBName: "hospital_db", SSLMode: "disable",
			},
			want: []string{"host=db", "port=5432", "dbname=hospital_db", "sslmode=disable"},
		},
		{
			name: "mysql",
			cfg:  Config{Driver: "mysql", Host: "db", User: "root", Password: "pw", DBName: "hospital_db"},
			want: []string{"root:pw@tcp(db:3306)/hospital_db", "parseTime=true"},
		},
		{
			name: "sqlite3",
			cfg:  Config{Driver: "sqlite3", Path: "/tmp/h.db"},
			want: []string{"file:/tmp/h.db", "_fk=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.cfg.DSN()
			for _, part := range tt.want {
				if !strings.Contains(dsn, part) {
					t.Errorf("DSN() = %q, missing %q", dsn, part)
				}
			}
		})
	}
}

func TestConfigDialectFallsBackToPostgres(t *testing.T) {
	if got := (Config{Driver: ""}).Dialect(); got != "postgres" {
		t.Errorf("Dialect() = %q, want postgres", got)
	}
	if got := (Config{Driver: "sqlite3"}).Dialect(); got != "sqlite3" {
		t.Errorf("Dialect() = %q, want sqlite3", got)
	}
}

func TestConnMaxLifetimeDefault(t *testing.T) {
	if got := (Config{}).ConnMaxLifetime(); got != 5*time.Minute {
		t.Errorf("ConnMaxLifetime() = %v, want 5m", got)
	}
	if got := (Config{ConnMaxLifetimeMin: 2}).ConnMaxLifetime(); got != 2*time.Minute {
		t.Errorf("ConnMaxLifetime() = %v, want 2m", got)
	}
}
