package cmd

import (
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	paths := [][]string{
		{"system", "migrate"},
		{"system", "init"},
		{"system", "gendocs"},
		{"patient", "add"},
		{"patient", "days"},
		{"patient", "usage", "clear"},
		{"doctor", "search"},
		{"service", "update"},
		{"appointment", "filter"},
		{"appointment", "days"},
		{"billing", "invoice"},
		{"billing", "total"},
		{"export"},
		{"menu"},
	}

	for _, p := range paths {
		t.Run(strings.Join(p, " "), func(t *testing.T) {
			c, _, err := rootCmd.Find(p)
			if err != nil {
				t.Fatalf("Find(%v) error = %v", p, err)
			}
			if c.Name() != p[len(p)-1] {
				t.Errorf("Find(%v) = %q", p, c.Name())
			}
			if c.RunE == nil {
				t.Errorf("%q has no RunE", c.CommandPath())
			}
		})
	}
}

func TestConfigFlagDefault(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("config")
	if f == nil {
		t.Fatal("config flag not registered")
	}
	if f.DefValue != "config.yaml" {
		t.Errorf("config default = %q, want config.yaml", f.DefValue)
	}
}
