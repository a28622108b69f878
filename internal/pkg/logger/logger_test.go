package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestRedactEmail(t *testing.T) {
	cases := map[string]string{
		"john.doe@example.com": "jo***@example.com",
		"ab@example.com":       "***@example.com",
		"not-an-email":         "***@***",
		"a@b@c":                "***@***",
	}
	for in, want := range cases {
		if got := RedactEmail(in); got != want {
			t.Errorf("RedactEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogRedactsEmailFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Info("contact created", "contact_email", "jane.doe@example.com", "id", 7)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["contact_email"] != "ja***@example.com" {
		t.Errorf("email not redacted: %v", entry["contact_email"])
	}
	if entry["level"] != "INFO" || entry["msg"] != "contact created" {
		t.Errorf("unexpected envelope: %v", entry)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(WARN)
	defer func() {
		SetOutput(os.Stderr)
		SetLevel(INFO)
	}()

	Info("suppressed")
	Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("INFO entry emitted despite WARN level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("WARN entry missing")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != DEBUG || ParseLevel("WARN") != WARN || ParseLevel("bogus") != INFO {
		t.Error("ParseLevel mapping incorrect")
	}
}
