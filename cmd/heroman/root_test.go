package main

import (
	"bytes"
	"testing"
)

func TestRootCmd_Use(t *testing.T) {
	if rootCmd.Use != "heroman" {
		t.Errorf("rootCmd.Use = %s, expected heroman", rootCmd.Use)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := []struct {
		name     string
		defValue string
	}{
		{"json", "false"},
		{"db", ""},
		{"config", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("rootCmd should have --%s flag", tt.name)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, expected %q", tt.name, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"task", "player", "serve", "init", "tui"}

	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			if err != nil || cmd == rootCmd {
				t.Errorf("subcommand %q not registered", name)
			}
		})
	}
}

func TestTaskCmd_Subcommands(t *testing.T) {
	want := []string{"add", "list", "show", "edit", "done", "rm"}

	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{"task", name})
			if err != nil || cmd == taskCmd {
				t.Errorf("task subcommand %q not registered", name)
			}
		})
	}
}

func TestTaskCmd_Flags(t *testing.T) {
	tests := []struct {
		cmd       string
		flag      string
		shorthand string
	}{
		{"add", "description", "d"},
		{"add", "type", "t"},
		{"add", "difficulty", "x"},
		{"list", "filter", ""},
		{"list", "sort", ""},
		{"edit", "title", ""},
		{"edit", "difficulty", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd+"/"+tt.flag, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{"task", tt.cmd})
			if err != nil {
				t.Fatalf("Find failed: %v", err)
			}
			flag := cmd.Flags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("task %s should have --%s flag", tt.cmd, tt.flag)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, expected %q", tt.flag, flag.Shorthand, tt.shorthand)
			}
		})
	}
}

func TestServeCmd_HasBindFlag(t *testing.T) {
	if serveCmd.Flags().Lookup("bind") == nil {
		t.Error("serve should have --bind flag")
	}
}

func TestRootCmd_Help(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Errorf("rootCmd.Execute() returned error: %v", err)
	}

	if buf.Len() == 0 {
		t.Error("Help output should not be empty")
	}
}
