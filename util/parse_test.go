package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseUint64(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"2048", 2048},
		{"  2048  ", 2048},
		{"2048 kB", 2048},
		{"1200 kB\n", 1200},
		{"", 0},
		{"-5", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := ParseUint64(tt.in); got != tt.want {
			t.Errorf("ParseUint64(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseKeyValueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status")
	content := "Name:\tpostgres\nState:\tS (sleeping)\nVmRSS:\t   50000 kB\n\nThreads: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	kv, err := ParseKeyValueFile(path)
	if err != nil {
		t.Fatalf("ParseKeyValueFile() error = %v", err)
	}
	if got, want := kv["VmRSS"], "50000 kB"; got != want {
		t.Errorf("VmRSS = %q, want %q", got, want)
	}
	if got, want := kv["Name"], "postgres"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
	if got, want := kv["State"], "S (sleeping)"; got != want {
		t.Errorf("State = %q, want %q", got, want)
	}
}
