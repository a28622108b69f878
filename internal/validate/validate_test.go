package validate

import (
	"strings"
	"testing"
)

func TestContact_Valid(t *testing.T) {
	in, ferr := Contact("  Ana Solis  ", "ana@example.com", "  I want to join the strength program  ")
	if ferr != nil {
		t.Fatalf("Contact() unexpected error: %v", ferr)
	}
	if in.Name != "Ana Solis" {
		t.Errorf("Name = %q, want trimmed %q", in.Name, "Ana Solis")
	}
	if in.Email != "ana@example.com" {
		t.Errorf("Email = %q, want %q", in.Email, "ana@example.com")
	}
	if in.Message != "I want to join the strength program" {
		t.Errorf("Message = %q, want trimmed message", in.Message)
	}
}

func TestContact_PreservesCase(t *testing.T) {
	in, ferr := Contact("aNA sOLIS", "Ana@Example.COM", "message long enough here")
	if ferr != nil {
		t.Fatalf("Contact() unexpected error: %v", ferr)
	}
	if in.Name != "aNA sOLIS" || in.Email != "Ana@Example.COM" {
		t.Errorf("validation must never change case, got name=%q email=%q", in.Name, in.Email)
	}
}

func TestContact_NameTooShort(t *testing.T) {
	// Name failures take priority regardless of the other fields.
	cases := []struct{ name, email, message string }{
		{"A", "good@example.com", "a perfectly fine message"},
		{"  B  ", "good@example.com", "a perfectly fine message"},
		{"", "bad-email", "short"},
	}
	for _, c := range cases {
		_, ferr := Contact(c.name, c.email, c.message)
		if ferr == nil {
			t.Fatalf("Contact(%q, ...) expected error", c.name)
		}
		if ferr.Field != "name" || ferr.Reason != ReasonTooShort {
			t.Errorf("Contact(%q, ...) = {%s %s}, want {name too_short}", c.name, ferr.Field, ferr.Reason)
		}
	}
}

func TestContact_MalformedEmail(t *testing.T) {
	bad := []string{
		"",
		"plainaddress",
		"missing-domain@",
		"@missing-local.com",
		"no-dot@localhost",
		"two@@example.com",
		"spaces in@example.com",
	}
	for _, email := range bad {
		_, ferr := Contact("Ana", email, "message long enough here")
		if ferr == nil {
			t.Fatalf("Contact(email=%q) expected error", email)
		}
		if ferr.Field != "email" || ferr.Reason != ReasonMalformed {
			t.Errorf("Contact(email=%q) = {%s %s}, want {email malformed}", email, ferr.Field, ferr.Reason)
		}
	}
}

func TestContact_MessageTooShort(t *testing.T) {
	_, ferr := Contact("Ana", "ana@example.com", "   too short   ")
	if ferr == nil {
		t.Fatal("expected error for 9-char trimmed message")
	}
	if ferr.Field != "message" || ferr.Reason != ReasonTooShort {
		t.Errorf("got {%s %s}, want {message too_short}", ferr.Field, ferr.Reason)
	}

	// Exactly at the threshold passes.
	if _, ferr := Contact("Ana", "ana@example.com", strings.Repeat("x", MinMessageLen)); ferr != nil {
		t.Errorf("message at threshold should pass, got %v", ferr)
	}
}

func TestProgram_Valid(t *testing.T) {
	in, ferr := Program(" strength training ", "12-week progressive overload plan for beginners")
	if ferr != nil {
		t.Fatalf("Program() unexpected error: %v", ferr)
	}
	// Trimmed but not title-cased: case normalization happens only in cleaning.
	if in.Name != "strength training" {
		t.Errorf("Name = %q, want %q", in.Name, "strength training")
	}
}

func TestProgram_Thresholds(t *testing.T) {
	if _, ferr := Program("ab", "a long enough description"); ferr == nil || ferr.Field != "name" {
		t.Errorf("2-char program name should fail on name, got %v", ferr)
	}
	if _, ferr := Program("abc", "too short"); ferr == nil || ferr.Field != "description" {
		t.Errorf("9-char description should fail on description, got %v", ferr)
	}
	if _, ferr := Program("abc", strings.Repeat("d", MinDescriptionLen)); ferr != nil {
		t.Errorf("description at threshold should pass, got %v", ferr)
	}
}

func TestValidEmail(t *testing.T) {
	good := []string{"a@x.com", "A@x.com", "first.last@sub.example.org", "user+tag@example.co"}
	for _, e := range good {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
}
