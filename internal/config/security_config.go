// config/security_config.go
package config

type AccessLevel int

const (
	AccessPublic        AccessLevel = iota // No session user required
	AccessAuthenticated                    // Logged-in user required
	AccessVerified                         // Logged-in user with a verified email
	AccessSystemAdmin                      // System role ADMIN
)

// RouteAccess maps route names to their required access level
var RouteAccess = map[string]AccessLevel{
	// Auth - Public
	"login":           AccessPublic,
	"login.submit":    AccessPublic,
	"register":        AccessPublic,
	"register.submit": AccessPublic,
	"forgot":          AccessPublic,
	"forgot.submit":   AccessPublic,
	"reset":           AccessPublic,
	"reset.submit":    AccessPublic,
	"verify":          AccessPublic,
	"logout":          AccessPublic,

	// Misc - Public
	"health":            AccessPublic,
	"password.strength": AccessPublic,
	"report":            AccessPublic,
	"report.submit":     AccessPublic,
	"ui.sidebar":        AccessPublic,
	"ui.color":          AccessPublic,

	// Projects - Public browsing
	"home":           AccessPublic,
	"projects.list":  AccessPublic,
	"projects.show":  AccessPublic,
	"projects.short": AccessPublic,

	// Enrollment - the dispatcher itself reports unauthenticated and unverified
	// users with a notice, so the requester route stays public.
	"enrollment.act": AccessPublic,

	// Projects - Verified
	"projects.new":      AccessVerified,
	"projects.create":   AccessVerified,
	"projects.edit":     AccessVerified,
	"projects.update":   AccessVerified,
	"projects.delete":   AccessVerified,
	"projects.favorite": AccessAuthenticated,
	"requests.act":      AccessVerified,
	"invitations.send":  AccessVerified,

	// Profile - Authenticated
	"profile": AccessAuthenticated,

	// Reference data - System admin
	"reference.list":   AccessSystemAdmin,
	"reference.new":    AccessSystemAdmin,
	"reference.create": AccessSystemAdmin,
	"reference.edit":   AccessSystemAdmin,
	"reference.update": AccessSystemAdmin,
	"reference.delete": AccessSystemAdmin,
	"users.list":       AccessSystemAdmin,
}

// GetAccessLevel returns the access level for a given route name
func GetAccessLevel(route string) AccessLevel {
	if level, exists := RouteAccess[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return AccessSystemAdmin
}
