package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"hr@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"hr@", "@example.com", "hr@.com", "hr@com", "hr@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "2023/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2026-02", "1999-12"}
	invalid := []string{"2026-13", "2026-2", "2026-02-01", ""}
	for _, s := range valid {
		if _, ok := IsValidMonth(s); !ok {
			t.Errorf("IsValidMonth(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00:00", "09:45:00", "23:59:59", "19:05:30"}
	invalid := []string{"24:00:00", "25:00:00", "9:45:00", "09:60:00", "09:45", "09:45:00.5", ""}
	for _, s := range valid {
		if !IsValidTime(s) {
			t.Errorf("IsValidTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTime(s) {
			t.Errorf("IsValidTime(%q) = true, want false", s)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"Secret1", true},
		{"secret1", false},
		{"SECRET1", false},
		{"Secretly", false},
	}
	for _, c := range cases {
		if got := IsStrongPassword(c.input); got != c.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

type sampleRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=10"`
	Date     string  `json:"date" validate:"required,date"`
	Clock    *string `json:"check_in_time" validate:"omitempty,clock"`
	Month    string  `json:"month" validate:"omitempty,month"`
	Password string  `json:"password" validate:"omitempty,strongpassword"`
}

func TestStruct(t *testing.T) {
	ok := "09:30:00"
	if errs := Struct(sampleRequest{Name: "Ann", Date: "2026-01-02", Clock: &ok, Month: "2026-01", Password: "Abcdef1"}); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	bad := "25:00:00"
	errs := Struct(sampleRequest{Name: "A", Date: "2026-1-2", Clock: &bad, Month: "2026-1", Password: "weak"})
	got := errs.ToMap()
	for _, field := range []string{"name", "date", "check_in_time", "month", "password"} {
		if _, exists := got[field]; !exists {
			t.Errorf("Struct(invalid) missing error for %q: %v", field, got)
		}
	}
	if got["name"] != "must be at least 2 characters" {
		t.Errorf("name message = %q", got["name"])
	}
	if got["check_in_time"] != "must be in HH:MM:SS format" {
		t.Errorf("check_in_time message = %q", got["check_in_time"])
	}
}
