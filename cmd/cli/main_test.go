package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestClassifyCmd(t *testing.T) {
	cmd := classifyCmd()
	cmd.SetArgs([]string{"Versement initial", "ANNULÉ"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if !strings.Contains(out, `"type": "DEPOSIT"`) {
		t.Fatalf("expected DEPOSIT classification, got %q", out)
	}
	if !strings.Contains(out, `"status": "CANCELLED"`) {
		t.Fatalf("expected CANCELLED status, got %q", out)
	}
}

func TestMaturityCmd(t *testing.T) {
	cmd := maturityCmd()
	cmd.SetArgs([]string{"--opened", "2024-01-31", "--term", "1"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unsupported term")
	}

	cmd = maturityCmd()
	cmd.SetArgs([]string{"--opened", "2024-01-31", "--term", "3"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if !strings.Contains(out, `"maturity_date": "2024-04-30"`) {
		t.Fatalf("expected clamped maturity 2024-04-30, got %q", out)
	}
}

func TestInterestCmd(t *testing.T) {
	cmd := interestCmd()
	cmd.SetArgs([]string{"--principal", "100000", "--rate", "1.5", "--term", "12"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if !strings.Contains(out, "18000") {
		t.Fatalf("expected projected interest 18000, got %q", out)
	}
}
