package domain

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
)

// Notice is a dismissible, already-localized notification shown once.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// IssueReport is submitted from the error page
type IssueReport struct {
	Reference   string `json:"reference"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Email       string `json:"email,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
}
