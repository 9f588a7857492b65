package domains

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nowhq/now-cli/api"
	"github.com/nowhq/now-cli/output"
	"github.com/nowhq/now-cli/scope"
)

type bindCall struct {
	project string
	domain  string
}

type unbindCall struct {
	projectID string
	domain    string
}

type mockClient struct {
	bindCalls []bindCall
	bindErrs  []error

	unbindCalls []unbindCall
	unbindErr   error

	verifyCalls  int
	verification *api.Verification
	verifyErr    error

	domains    []api.Domain
	listErr    error
	removeCall string
	removeErr  error
}

func (m *mockClient) BindDomain(ctx context.Context, project, domain string) (*api.Domain, error) {
	m.bindCalls = append(m.bindCalls, bindCall{project: project, domain: domain})
	if len(m.bindErrs) > 0 {
		err := m.bindErrs[0]
		m.bindErrs = m.bindErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &api.Domain{Name: domain}, nil
}

func (m *mockClient) UnbindDomain(ctx context.Context, projectID, domain string) error {
	m.unbindCalls = append(m.unbindCalls, unbindCall{projectID: projectID, domain: domain})
	return m.unbindErr
}

func (m *mockClient) DomainVerification(ctx context.Context, domain string) (*api.Verification, error) {
	m.verifyCalls++
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	if m.verification != nil {
		return m.verification, nil
	}
	return &api.Verification{Verified: true}, nil
}

func (m *mockClient) Domains(ctx context.Context) ([]api.Domain, error) {
	return m.domains, m.listErr
}

func (m *mockClient) RemoveDomain(ctx context.Context, domain string) error {
	m.removeCall = domain
	return m.removeErr
}

type mockScopes struct {
	calls int
	sctx  *scope.Context
	err   error
}

func (m *mockScopes) Resolve(ctx context.Context) (*scope.Context, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.sctx != nil {
		return m.sctx, nil
	}
	return &scope.Context{Name: "alice"}, nil
}

func newTestService(client *mockClient, scopes *mockScopes) (*Service, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	printer := output.New(buf, buf, false)
	return NewService(client, scopes, printer), buf
}

func conflict(projectID string) *api.Error {
	return &api.Error{
		Code:    api.CodeAliasDomainExists,
		Message: "the domain is already assigned to another project",
		Project: &api.Project{ID: projectID, Name: "other-app"},
	}
}

func TestAddInvalidDomainMakesNoNetworkCalls(t *testing.T) {
	client := &mockClient{}
	scopes := &mockScopes{}
	svc, _ := newTestService(client, scopes)

	err := svc.Add(context.Background(), "not a domain", "myapp", AddOptions{})
	require.ErrorIs(t, err, ErrInvalidDomain)
	assert.Empty(t, client.bindCalls)
	assert.Empty(t, client.unbindCalls)
	assert.Zero(t, client.verifyCalls)
	assert.Zero(t, scopes.calls)
}

func TestAddScopeFailureAbortsBeforeBind(t *testing.T) {
	client := &mockClient{}
	scopes := &mockScopes{err: scope.ErrNotAuthorized}
	svc, _ := newTestService(client, scopes)

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{})
	require.ErrorIs(t, err, scope.ErrNotAuthorized)
	assert.Empty(t, client.bindCalls)
}

func TestAddScopeUnrecognizedErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	svc, _ := newTestService(&mockClient{}, &mockScopes{err: boom})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{})
	assert.Equal(t, boom, err)
}

func TestAddSuccessVerified(t *testing.T) {
	client := &mockClient{verification: &api.Verification{Verified: true}}
	svc, buf := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, []bindCall{{project: "myapp", domain: "example.com"}}, client.bindCalls)
	assert.Empty(t, client.unbindCalls)
	assert.Equal(t, 1, client.verifyCalls)
	assert.Contains(t, buf.String(), "Success! Domain example.com added to project myapp.")
	assert.Contains(t, buf.String(), "latest production deployment")
}

func TestAddConflictWithoutForceReportsOriginalError(t *testing.T) {
	conflictErr := conflict("prj_123")
	client := &mockClient{bindErrs: []error{conflictErr}}
	svc, _ := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, conflictErr, apiErr)
	assert.Len(t, client.bindCalls, 1)
	assert.Empty(t, client.unbindCalls, "unbind must never run without --force")
	assert.Zero(t, client.verifyCalls)
}

func TestAddConflictWithForceReassigns(t *testing.T) {
	client := &mockClient{
		bindErrs:     []error{conflict("prj_123"), nil},
		verification: &api.Verification{Verified: true},
	}
	svc, buf := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, []unbindCall{{projectID: "prj_123", domain: "example.com"}}, client.unbindCalls)
	assert.Len(t, client.bindCalls, 2)
	assert.Equal(t, 1, client.verifyCalls)
	assert.Contains(t, buf.String(), "Reassigning")
}

func TestAddConflictWithForceRebindFailsNoThirdAttempt(t *testing.T) {
	second := conflict("prj_456")
	client := &mockClient{bindErrs: []error{conflict("prj_123"), second}}
	svc, _ := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{Force: true})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, second, apiErr, "the second failure is reported verbatim")
	assert.Len(t, client.bindCalls, 2, "retry is bounded to a single rebind")
	assert.Len(t, client.unbindCalls, 1)
	assert.Zero(t, client.verifyCalls)
}

func TestAddConflictWithoutProjectIDIsNotRecoverable(t *testing.T) {
	conflictErr := &api.Error{Code: api.CodeAliasDomainExists, Message: "domain in use"}
	client := &mockClient{bindErrs: []error{conflictErr}}
	svc, _ := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{Force: true})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, conflictErr, apiErr)
	assert.Empty(t, client.unbindCalls)
	assert.Len(t, client.bindCalls, 1)
}

func TestAddUnbindFailureIsTerminal(t *testing.T) {
	client := &mockClient{
		bindErrs:  []error{conflict("prj_123")},
		unbindErr: errors.New("unbind exploded"),
	}
	svc, _ := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{Force: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove example.com")
	assert.Len(t, client.bindCalls, 1, "no rebind after a failed unbind")
	assert.Zero(t, client.verifyCalls)
}

func TestAddPlatformManagedSkipsVerification(t *testing.T) {
	client := &mockClient{}
	svc, buf := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "myapp.now.sh", "myapp", AddOptions{})
	require.NoError(t, err)
	assert.Zero(t, client.verifyCalls, "platform-managed names never hit the verification endpoint")
	assert.Contains(t, buf.String(), "Success! Domain myapp.now.sh added to project myapp.")
	assert.Contains(t, buf.String(), "latest production deployment")
	assert.NotContains(t, buf.String(), "NAMESERVERS")
}

func TestAddPendingVerificationGuidance(t *testing.T) {
	client := &mockClient{verification: &api.Verification{
		Verified:            false,
		Nameservers:         []string{"ns1.example.com"},
		IntendedNameservers: []string{"ns1.vercel-dns.com", "ns2.vercel-dns.com"},
		VerificationRecord:  "abc123",
	}}
	svc, buf := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "INTENDED NAMESERVERS")
	assert.Contains(t, out, "CURRENT NAMESERVERS")
	assert.Contains(t, out, "ns1.vercel-dns.com")
	assert.Contains(t, out, "ns2.vercel-dns.com")
	assert.Contains(t, out, "ns1.example.com")
	assert.Contains(t, out, "_now TXT abc123")
	assert.Contains(t, out, "email")
}

func TestAddVerificationFetchFailureIsTerminal(t *testing.T) {
	client := &mockClient{verifyErr: errors.New("gateway timeout")}
	svc, _ := newTestService(client, &mockScopes{})

	err := svc.Add(context.Background(), "example.com", "myapp", AddOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch verification status for example.com")
}

func TestList(t *testing.T) {
	client := &mockClient{domains: []api.Domain{{Name: "example.com", Verified: true}}}
	scopes := &mockScopes{}
	svc, _ := newTestService(client, scopes)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "example.com", list[0].Name)
	assert.Equal(t, 1, scopes.calls)
}

func TestRemove(t *testing.T) {
	client := &mockClient{}
	svc, buf := newTestService(client, &mockScopes{})

	err := svc.Remove(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", client.removeCall)
	assert.Contains(t, buf.String(), "Success! Domain example.com removed.")
}

func TestRemoveInvalidDomain(t *testing.T) {
	client := &mockClient{}
	svc, _ := newTestService(client, &mockScopes{})

	err := svc.Remove(context.Background(), "...")
	require.ErrorIs(t, err, ErrInvalidDomain)
	assert.Empty(t, client.removeCall)
}
