package domain

import "time"

// Screens a visitor can be on. Dashboard is reachable only while
// authenticated.
type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenSignup    Screen = "signup"
	ScreenDashboard Screen = "dashboard"
)

// Session is the per-visitor context carried through every interaction.
// Flows receive it, mutate it, and hand it back to the session store;
// nothing session-scoped lives in package state.
type Session struct {
	ID            string    `json:"id"`
	Authenticated bool      `json:"authenticated"`
	Screen        Screen    `json:"screen"`
	Member        *Member   `json:"member,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Login marks the session authenticated and stores the matched record as
// the active user context.
func (s *Session) Login(m *Member) {
	s.Authenticated = true
	s.Member = m
	s.Screen = ScreenDashboard
}

// Logout returns every field to its default and clears the stored record.
func (s *Session) Logout() {
	s.Authenticated = false
	s.Member = nil
	s.Screen = ScreenLogin
}
