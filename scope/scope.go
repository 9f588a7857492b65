// Package scope resolves the identity context API operations run under:
// either the personal account or a configured team.
package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/nowhq/now-cli/api"
)

// Sentinel errors reported to the user. Any other resolution failure is
// propagated to the caller unmodified.
var (
	// ErrNotAuthorized indicates the token does not grant access to the
	// requested scope.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrTeamDeleted indicates the configured team no longer exists.
	ErrTeamDeleted = errors.New("team deleted")
)

// Context is the resolved identity for one invocation. It is derived once
// and never mutated.
type Context struct {
	// Name is the user-facing scope name (username or team slug).
	Name string

	// TeamID is set when the scope is a team.
	TeamID string
}

// API is the subset of the platform client used for scope resolution.
type API interface {
	User(ctx context.Context) (*api.User, error)
	Team(ctx context.Context, id string) (*api.Team, error)
}

// Resolver turns configured credentials into a scope Context.
type Resolver struct {
	client API
	team   string
}

// NewResolver creates a Resolver. team selects a team scope by id or slug;
// empty selects the personal account.
func NewResolver(client API, team string) *Resolver {
	return &Resolver{client: client, team: team}
}

// Resolve determines the current scope. Missing or rejected credentials
// yield ErrNotAuthorized; a configured team that no longer exists yields
// ErrTeamDeleted.
func (r *Resolver) Resolve(ctx context.Context) (*Context, error) {
	if r.team != "" {
		team, err := r.client.Team(ctx, r.team)
		if err != nil {
			return nil, mapTeamError(err)
		}
		return &Context{Name: team.Slug, TeamID: team.ID}, nil
	}

	user, err := r.client.User(ctx)
	if err != nil {
		return nil, mapUserError(err)
	}
	return &Context{Name: user.Username}, nil
}

func mapUserError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case api.CodeForbidden, api.CodeNotAuthorized:
			return fmt.Errorf("%w: %s", ErrNotAuthorized, apiErr.Message)
		}
	}
	return err
}

func mapTeamError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case api.CodeForbidden, api.CodeNotAuthorized:
			return fmt.Errorf("%w: %s", ErrNotAuthorized, apiErr.Message)
		case api.CodeTeamDeleted, api.CodeNotFound:
			return fmt.Errorf("%w: %s", ErrTeamDeleted, apiErr.Message)
		}
	}
	return err
}
