package main

import (
	"bytes"
	"strings"
	"testing"

	"scenyx-cli/internal/auth"
)

func TestRunLoginWithFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	err := runLogin([]string{"-token", "acc-1", "-refresh-token", "ref-1"}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("runLogin: %v", err)
	}
	if !strings.Contains(out.String(), "Credentials saved.") {
		t.Fatalf("output = %q", out.String())
	}

	creds, err := auth.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds.AccessToken != "acc-1" || creds.RefreshToken != "ref-1" {
		t.Fatalf("creds = %+v", creds)
	}
}

func TestRunLoginPromptsForToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	err := runLogin(nil, strings.NewReader("prompted-token\n"), &out)
	if err != nil {
		t.Fatalf("runLogin: %v", err)
	}
	if !strings.Contains(out.String(), "Access token: ") {
		t.Fatalf("missing prompt in %q", out.String())
	}

	creds, err := auth.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if creds.AccessToken != "prompted-token" {
		t.Fatalf("creds = %+v", creds)
	}
}

func TestRunLoginRejectsEmptyToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	if err := runLogin(nil, strings.NewReader("\n"), &out); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
