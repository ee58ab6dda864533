package form

import "testing"

func TestRecordLastWriteWins(t *testing.T) {
	r := NewRecord()

	r.Set("email", "a@example.edu")
	r.Set("password", "first")
	r.Set("password", "second")

	if got := r.Value("email"); got != "a@example.edu" {
		t.Fatalf("unexpected email: %q", got)
	}
	if got := r.Value("password"); got != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 fields, got %d", r.Len())
	}
}

func TestRecordUnwrittenFieldsAbsent(t *testing.T) {
	r := NewRecord()
	r.Set("name", "Example University")

	if r.Has("email") {
		t.Fatalf("unwritten field must be absent")
	}
	if got := r.Value("email"); got != "" {
		t.Fatalf("controlled echo of absent field must be empty, got %q", got)
	}
}

func TestRecordReset(t *testing.T) {
	r := NewRecord()
	r.Set("student_name", "Ada Lovelace")
	r.Set("roll_number", "CS-101")

	r.Reset()

	if r.Len() != 0 {
		t.Fatalf("expected empty record after reset, got %d fields", r.Len())
	}
	if r.Has("student_name") {
		t.Fatalf("fields must be absent after reset")
	}
}

func TestRecordFieldsSnapshot(t *testing.T) {
	r := NewRecord()
	r.Set("grade", "A")

	snapshot := r.Fields()
	snapshot["grade"] = "F"

	if got := r.Value("grade"); got != "A" {
		t.Fatalf("snapshot mutation leaked into record: %q", got)
	}
}
