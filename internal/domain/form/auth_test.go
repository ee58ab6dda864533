package form

import "testing"

func TestAuthFormMountsOnLoginTab(t *testing.T) {
	f := NewAuthForm()

	if f.Tab() != TabLogin {
		t.Fatalf("expected login tab on mount, got %v", f.Tab())
	}
	if f.Record().Len() != 0 {
		t.Fatalf("expected empty record on mount")
	}
}

func TestAuthFormSwitchTogglesTabs(t *testing.T) {
	f := NewAuthForm()

	if got := f.Switch(); got != TabRegister {
		t.Fatalf("expected register tab, got %v", got)
	}
	if got := f.Switch(); got != TabLogin {
		t.Fatalf("expected login tab, got %v", got)
	}
}

func TestAuthFormSharedRecordAcrossTabs(t *testing.T) {
	f := NewAuthForm()
	f.Record().Set("email", "shared@example.edu")

	f.Switch()

	if got := f.Record().Value("email"); got != "shared@example.edu" {
		t.Fatalf("tabs must share one record, got %q", got)
	}
}

func TestAuthFormRegisterSuccessForcesLoginTabAndReset(t *testing.T) {
	f := NewAuthForm()
	f.SetTab(TabRegister)
	f.Record().Set("name", "Example University")
	f.Record().Set("email", "reg@example.edu")
	f.Record().Set("password", "secret")

	f.OnRegisterSuccess()

	if f.Tab() != TabLogin {
		t.Fatalf("expected forced transition to login tab, got %v", f.Tab())
	}
	if f.Record().Len() != 0 {
		t.Fatalf("expected record cleared after successful registration")
	}
}
