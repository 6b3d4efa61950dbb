// Package testsupport holds fixture and golden file helpers shared by the
// package tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-serviceform/pkg/form"
)

// UpdateGoldensEnv enables golden rewrites when set to any value.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// MustLoadService reads a JSON fixture into a composed service.
func MustLoadService(t *testing.T, path string) form.Service {
	t.Helper()

	service, err := LoadService(path)
	if err != nil {
		t.Fatalf("load service: %v", err)
	}
	return service
}

// LoadService reads a JSON fixture into a form.Service, returning an error for
// callers managing setup outside of *testing.T.
func LoadService(path string) (form.Service, error) {
	if path == "" {
		return form.Service{}, errors.New("testsupport: service path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return form.Service{}, fmt.Errorf("testsupport: read service: %w", err)
	}
	var out form.Service
	if err := json.Unmarshal(data, &out); err != nil {
		return form.Service{}, fmt.Errorf("testsupport: unmarshal service: %w", err)
	}
	return out, nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv(UpdateGoldensEnv) == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}
