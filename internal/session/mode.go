package session

// Mode is the screen the client should show.
type Mode string

const (
	ModeLogin   Mode = "LOGIN"
	ModeStudent Mode = "STUDENT"
	ModeAdmin   Mode = "ADMIN"
)

// Intent is a navigation request from the client.
type Intent string

const (
	IntentEnterStudent Intent = "enter_student"
	IntentEnterAdmin   Intent = "enter_admin"
	IntentLoginSuccess Intent = "login_success"
	IntentBack         Intent = "back"
	IntentLogout       Intent = "logout"
)

// InitialMode is where a client lands; an authenticated session resumes
// in the admin area.
func InitialMode(authenticated bool) Mode {
	if authenticated {
		return ModeAdmin
	}
	return ModeLogin
}

// Next applies intent to mode. The admin area is only reachable while
// authenticated.
func Next(mode Mode, intent Intent, authenticated bool) Mode {
	switch intent {
	case IntentEnterStudent:
		return ModeStudent
	case IntentEnterAdmin, IntentLoginSuccess:
		if authenticated {
			return ModeAdmin
		}
		return ModeLogin
	case IntentBack, IntentLogout:
		return ModeLogin
	}
	if mode == ModeAdmin && !authenticated {
		return ModeLogin
	}
	return mode
}

// ParseMode accepts one of the known mode names.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeLogin, ModeStudent, ModeAdmin:
		return m, true
	}
	return "", false
}
