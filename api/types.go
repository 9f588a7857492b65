package api

import (
	"net/http"

	"github.com/tidwall/gjson"
)

// Platform error codes recognized by the CLI.
const (
	// CodeAliasDomainExists means the domain is already bound to another
	// project. The error carries that project when the API reports it.
	CodeAliasDomainExists = "alias_domain_exists"

	// CodeNotAuthorized means the token does not grant access to the
	// requested scope.
	CodeNotAuthorized = "not_authorized"

	// CodeForbidden means the token is missing or invalid.
	CodeForbidden = "forbidden"

	// CodeTeamDeleted means the configured team no longer exists.
	CodeTeamDeleted = "team_deleted"

	// CodeNotFound means the requested resource does not exist.
	CodeNotFound = "not_found"
)

// Error is a platform API failure. It carries the platform error code so
// callers can branch on the failure kind.
type Error struct {
	Code    string
	Message string
	Status  int

	// Project is set for conflict errors that identify the owning project.
	Project *Project
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Project identifies a project in error payloads and lookups.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Domain is a domain name registered in a scope.
type Domain struct {
	Name      string `json:"name"`
	Verified  bool   `json:"verified"`
	CreatedAt int64  `json:"createdAt"`
}

// Verification is the verification state of a domain.
type Verification struct {
	Verified            bool     `json:"verified"`
	Nameservers         []string `json:"nameservers"`
	IntendedNameservers []string `json:"intendedNameservers"`
	VerificationRecord  string   `json:"verificationRecord"`
}

// User is the authenticated account.
type User struct {
	Username string `json:"username"`
}

// Team is a team scope.
type Team struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// parseError decodes a platform error payload. The payload shape is
// {"error": {"code", "message", "project": {"id", "name"}}}; fields are
// extracted tolerantly so a malformed body still yields a usable error.
func parseError(status int, body []byte) *Error {
	e := &Error{
		Status:  status,
		Code:    gjson.GetBytes(body, "error.code").String(),
		Message: gjson.GetBytes(body, "error.message").String(),
	}
	if p := gjson.GetBytes(body, "error.project"); p.Exists() {
		e.Project = &Project{
			ID:   p.Get("id").String(),
			Name: p.Get("name").String(),
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
