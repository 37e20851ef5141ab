package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitCreatesFile(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), ".crawlkit.yaml")

	cmd := NewConfigInitCmd()
	cmd.SetArgs([]string{"-o", outputPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
	if len(content) == 0 {
		t.Error("expected non-empty config file")
	}
}

func TestConfigInitRefusesOverwriteWithoutForce(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), ".crawlkit.yaml")
	if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cmd := NewConfigInitCmd()
	cmd.SetArgs([]string{"-o", outputPath})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when overwriting without --force")
	}
}

func TestConfigInitForceOverwrites(t *testing.T) {
	t.Parallel()

	outputPath := filepath.Join(t.TempDir(), ".crawlkit.yaml")
	if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cmd := NewConfigInitCmd()
	cmd.SetArgs([]string{"-o", outputPath, "-f"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
