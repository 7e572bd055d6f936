package storage

import (
	"testing"
)

func TestNewStorageCmd(t *testing.T) {
	cmd := NewStorageCmd()

	if cmd.Use != "storage" {
		t.Errorf("expected Use='storage', got %q", cmd.Use)
	}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	expected := []string{"ls", "stat", "cat", "put", "cp", "rm"}
	for _, name := range expected {
		if !subcommands[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}
