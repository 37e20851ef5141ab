package main

import (
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "crawlkit" {
			t.Errorf("expected use 'crawlkit', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		subcommands := cmd.Commands()

		hasSubmit, hasCompare, hasConfig, hasVersion := false, false, false, false
		for _, sub := range subcommands {
			switch sub.Name() {
			case "submit":
				hasSubmit = true
			case "compare":
				hasCompare = true
			case "config":
				hasConfig = true
			case "version":
				hasVersion = true
			}
		}
		if !hasSubmit {
			t.Error("expected submit subcommand")
		}
		if !hasCompare {
			t.Error("expected compare subcommand")
		}
		if !hasConfig {
			t.Error("expected config subcommand")
		}
		if !hasVersion {
			t.Error("expected version subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

func TestNewConfigCmdHasInitSubcommand(t *testing.T) {
	t.Parallel()

	cmd := NewConfigCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "init" {
			return
		}
	}
	t.Error("expected init subcommand under config")
}
