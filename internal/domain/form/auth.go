package form

import "sync"

// Tab identifies the visible pane of the dual-tab auth form.
type Tab int

const (
	TabLogin Tab = iota
	TabRegister
)

func (t Tab) String() string {
	if t == TabRegister {
		return "register"
	}
	return "login"
}

// AuthForm is the dual-tab login/register form. Both tabs share one
// record since only one tab is visible at a time.
type AuthForm struct {
	mu     sync.Mutex
	tab    Tab
	record *Record
}

// NewAuthForm mounts the auth form on the login tab with an empty record.
func NewAuthForm() *AuthForm {
	return &AuthForm{record: NewRecord()}
}

// Record exposes the shared field record.
func (f *AuthForm) Record() *Record {
	return f.record
}

// Tab returns the active tab.
func (f *AuthForm) Tab() Tab {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tab
}

// Switch toggles between the login and register tabs. The transition is
// user-initiated and unconditional.
func (f *AuthForm) Switch() Tab {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tab == TabLogin {
		f.tab = TabRegister
	} else {
		f.tab = TabLogin
	}
	return f.tab
}

// SetTab selects a specific tab.
func (f *AuthForm) SetTab(tab Tab) {
	f.mu.Lock()
	f.tab = tab
	f.mu.Unlock()
}

// OnRegisterSuccess force-transitions to the login tab and clears the
// shared record.
func (f *AuthForm) OnRegisterSuccess() {
	f.mu.Lock()
	f.tab = TabLogin
	f.mu.Unlock()
	f.record.Reset()
}
