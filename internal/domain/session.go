package domain

import "time"

type ColorScheme string

const (
	ColorSchemeLight ColorScheme = "light"
	ColorSchemeDark  ColorScheme = "dark"
)

// UIState is per-session presentation state passed explicitly to every page.
type UIState struct {
	SidebarOpen bool        `json:"sidebar_open"`
	ColorScheme ColorScheme `json:"color_scheme"`
}

func DefaultUIState() UIState {
	return UIState{SidebarOpen: true, ColorScheme: ColorSchemeLight}
}

// BackendCookie is a credential cookie issued by the REST backend and replayed on each call
type BackendCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

type Session struct {
	ID        string          `json:"id"`
	User      *CurrentUser    `json:"user,omitempty"`
	Cookies   []BackendCookie `json:"cookies,omitempty"`
	Notices   []Notice        `json:"notices,omitempty"`
	UI        UIState         `json:"ui"`
	CreatedOn time.Time       `json:"created_on"`
	ExpiresOn time.Time       `json:"expires_on"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.User.ID != 0
}

// IsPristine reports whether the session holds nothing worth storing.
func (s *Session) IsPristine() bool {
	return s.User == nil && len(s.Cookies) == 0 && len(s.Notices) == 0 && s.UI == DefaultUIState()
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresOn.IsZero() && now.After(s.ExpiresOn)
}

// PushNotice queues a notice to be shown on the next rendered page.
func (s *Session) PushNotice(n Notice) {
	s.Notices = append(s.Notices, n)
}

// PopNotices drains the notice queue.
func (s *Session) PopNotices() []Notice {
	out := s.Notices
	s.Notices = nil
	return out
}
