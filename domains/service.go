package domains

import (
	"context"
	"errors"
	"fmt"

	"github.com/nowhq/now-cli/api"
	"github.com/nowhq/now-cli/output"
	"github.com/nowhq/now-cli/scope"
)

// Client is the subset of the platform API used by domain workflows.
type Client interface {
	BindDomain(ctx context.Context, project, domain string) (*api.Domain, error)
	UnbindDomain(ctx context.Context, projectID, domain string) error
	DomainVerification(ctx context.Context, domain string) (*api.Verification, error)
	Domains(ctx context.Context) ([]api.Domain, error)
	RemoveDomain(ctx context.Context, domain string) error
}

// ScopeResolver resolves the identity context for an invocation.
type ScopeResolver interface {
	Resolve(ctx context.Context) (*scope.Context, error)
}

// AddOptions contains options for the Add workflow.
type AddOptions struct {
	// Force reassigns the domain when it is already bound to another
	// project: the existing binding is removed and the bind retried once.
	Force bool
}

// Service implements the domain management workflows.
type Service struct {
	client  Client
	scopes  ScopeResolver
	printer output.Printer
}

// NewService creates a Service.
func NewService(client Client, scopes ScopeResolver, printer output.Printer) *Service {
	return &Service{client: client, scopes: scopes, printer: printer}
}

// Add binds a domain to a project and reports its verification state.
//
// When the domain is already bound to another project the bind fails with a
// conflict carrying the owning project. Without Force that conflict is
// returned as-is. With Force the workflow unbinds the domain from the
// owning project and retries the bind exactly once; a second failure of any
// kind is returned verbatim.
func (s *Service) Add(ctx context.Context, rawDomain, project string, opts AddOptions) error {
	name, err := Parse(rawDomain)
	if err != nil {
		return err
	}

	sc, err := s.scopes.Resolve(ctx)
	if err != nil {
		return err
	}

	s.printer.Log("Adding domain %s to project %s under %s", name, project, sc.Name)

	if _, err := s.client.BindDomain(ctx, project, name.String()); err != nil {
		owner, ok := conflictOwner(err)
		if !ok || !opts.Force {
			return err
		}

		s.printer.Log("Domain %s is in use by project %s. Reassigning it to %s.",
			name, projectLabel(owner), project)
		if err := s.client.UnbindDomain(ctx, owner.ID, name.String()); err != nil {
			return fmt.Errorf("failed to remove %s from project %s: %w",
				name, projectLabel(owner), err)
		}
		if _, err := s.client.BindDomain(ctx, project, name.String()); err != nil {
			return err
		}
	}

	s.printer.Success("Domain %s added to project %s.", name, project)
	return s.reportVerification(ctx, name)
}

// List returns the domains registered under the current scope.
func (s *Service) List(ctx context.Context) ([]api.Domain, error) {
	if _, err := s.scopes.Resolve(ctx); err != nil {
		return nil, err
	}
	return s.client.Domains(ctx)
}

// Remove deletes a domain from the current scope.
func (s *Service) Remove(ctx context.Context, rawDomain string) error {
	name, err := Parse(rawDomain)
	if err != nil {
		return err
	}
	if _, err := s.scopes.Resolve(ctx); err != nil {
		return err
	}
	if err := s.client.RemoveDomain(ctx, name.String()); err != nil {
		return err
	}
	s.printer.Success("Domain %s removed.", name)
	return nil
}

// conflictOwner reports whether err is the recoverable bind conflict: the
// domain is aliased to another project AND the API identified that project.
// A conflict without a usable project id is not recoverable.
func conflictOwner(err error) (*api.Project, bool) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return nil, false
	}
	if apiErr.Code != api.CodeAliasDomainExists {
		return nil, false
	}
	if apiErr.Project == nil || apiErr.Project.ID == "" {
		return nil, false
	}
	return apiErr.Project, true
}

func projectLabel(p *api.Project) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// reportVerification renders the post-bind verification guidance. Names
// under the reserved platform suffix skip the lookup entirely.
func (s *Service) reportVerification(ctx context.Context, name Name) error {
	if name.PlatformManaged() {
		s.printer.Log("The domain will point to your latest production deployment automatically.")
		return nil
	}

	v, err := s.client.DomainVerification(ctx, name.String())
	if err != nil {
		return fmt.Errorf("failed to fetch verification status for %s: %w", name, err)
	}

	if v.Verified {
		s.printer.Log("The domain is verified and will point to your latest production deployment automatically.")
		return nil
	}

	s.printer.Warn("The domain %s is pending verification.", name)
	s.printer.Log("Verify ownership by setting the following nameservers on %s:", name.Domain)
	s.printer.Print("")
	s.printer.Print(output.NameserverTable(v.IntendedNameservers, v.Nameservers))
	s.printer.Log("Or by adding a DNS TXT record:")
	s.printer.Print("")
	s.printer.Print(fmt.Sprintf("  _now TXT %s", v.VerificationRecord))
	s.printer.Print("")
	s.printer.Log("We will check periodically and email you once %s is verified.", name)
	return nil
}
