package ml

import (
	"os"
	"path/filepath"
	"testing"
)

func writeThreshold(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "threshold.json")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadThreshold(t *testing.T) {
	threshold, err := LoadThreshold(writeThreshold(t, "0.82"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if threshold != 0.82 {
		t.Fatalf("expected 0.82, got %v", threshold)
	}
}

func TestLoadThresholdFailures(t *testing.T) {
	if _, err := LoadThreshold(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if _, err := LoadThreshold(writeThreshold(t, "not a number")); err == nil {
		t.Fatal("expected error for corrupt artifact")
	}
	if _, err := LoadThreshold(writeThreshold(t, "1.5")); err == nil {
		t.Fatal("expected error for threshold above 1")
	}
	if _, err := LoadThreshold(writeThreshold(t, "-0.1")); err == nil {
		t.Fatal("expected error for negative threshold")
	}
}
