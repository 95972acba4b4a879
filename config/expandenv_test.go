package config

import (
	"errors"
	"strings"
	"testing"
)

func TestExpandEnvStrict_Expands(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")

	out, err := ExpandEnvStrict("host: ${DB_HOST}\nport: ${DB_PORT}")
	if err != nil {
		t.Fatalf("ExpandEnvStrict() error = %v", err)
	}
	if out != "host: localhost\nport: 5432" {
		t.Fatalf("ExpandEnvStrict() = %q", out)
	}
}

func TestExpandEnvStrict_MissingVarErrors(t *testing.T) {
	t.Setenv("PRESENT", "ok")

	_, err := ExpandEnvStrict("a=${PRESENT} b=${MISSING}")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrMissingEnv) {
		t.Fatalf("expected ErrMissingEnv, got: %v", err)
	}
	if !strings.Contains(err.Error(), "MISSING") {
		t.Fatalf("expected missing var name in error, got: %v", err)
	}
}

func TestExpandEnvStrict_MissingVarsSorted(t *testing.T) {
	_, err := ExpandEnvStrict("${ZZZ_VAR} ${AAA_VAR}")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "AAA_VAR, ZZZ_VAR") {
		t.Fatalf("expected sorted var names, got: %v", err)
	}
}

func TestExpandEnvStrict_DollarEscape(t *testing.T) {
	t.Setenv("X", "y")

	out, err := ExpandEnvStrict("$$${X}")
	if err != nil {
		t.Fatalf("ExpandEnvStrict() error = %v", err)
	}
	if out != "$y" {
		t.Fatalf("ExpandEnvStrict() = %q, want %q", out, "$y")
	}
}
