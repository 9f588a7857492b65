// Package cmd provides the cobra commands for the now CLI.
//
// Commands are thin: each constructor takes the collaborator interface it
// needs, parses flags and arguments, and delegates to it. Workflow logic
// lives in the domains package.
package cmd

import (
	"context"

	"github.com/nowhq/now-cli/api"
	"github.com/nowhq/now-cli/domains"
)

// DomainAdder binds a domain to a project and reports verification state.
type DomainAdder interface {
	Add(ctx context.Context, domain, project string, opts domains.AddOptions) error
}

// DomainLister lists the domains under the current scope.
type DomainLister interface {
	List(ctx context.Context) ([]api.Domain, error)
}

// DomainRemover deletes a domain from the current scope.
type DomainRemover interface {
	Remove(ctx context.Context, domain string) error
}
