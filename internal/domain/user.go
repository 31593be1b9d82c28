package domain

type SystemRole string

const (
	SystemRoleAdmin SystemRole = "ADMIN"
	SystemRoleUser  SystemRole = "USER"
)

// CurrentUser is the session summary returned by GET /auth/me
type CurrentUser struct {
	ID         int32      `json:"id"`
	Email      string     `json:"email"`
	IsVerified bool       `json:"isVerified"`
	SystemRole SystemRole `json:"systemRole"`
}

func (u *CurrentUser) IsAdmin() bool {
	return u != nil && u.SystemRole == SystemRoleAdmin
}

type User struct {
	ID                 int32               `json:"id"`
	Email              string              `json:"email"`
	Name               string              `json:"name"`
	LastName           string              `json:"lastName"`
	IsVerified         bool                `json:"isVerified"`
	SystemRole         SystemRole          `json:"systemRole"`
	Institution        *Institution        `json:"institution,omitempty"`
	ResearchDepartment *ResearchDepartment `json:"researchDepartment,omitempty"`
	Interests          []Interest          `json:"interests,omitempty"`
	Enrollments        []Enrollment        `json:"enrollments,omitempty"` // Populated with relations=enrollments.project
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register payload
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}
