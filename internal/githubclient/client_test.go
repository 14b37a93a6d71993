package githubclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/wgalyen/kimchi/internal/domain"
	"github.com/wgalyen/kimchi/tests/mocks"
)

type fakeExecutor struct {
	resp domain.Response
	err  error
	last domain.Request
}

func (f *fakeExecutor) Execute(ctx context.Context, req domain.Request) (domain.Response, error) {
	f.last = req
	return f.resp, f.err
}

func TestIsGitHubRepoURL(t *testing.T) {
	cases := []struct {
		name      string
		uri       domain.Uri
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{"repo root", domain.Uri{Kind: domain.KindWeb, Host: "github.com", Path: "/wgalyen/kimchi"}, "wgalyen", "kimchi", true},
		{"repo subpath", domain.Uri{Kind: domain.KindWeb, Host: "github.com", Path: "/wgalyen/kimchi/issues/1"}, "wgalyen", "kimchi", true},
		{"www host", domain.Uri{Kind: domain.KindWeb, Host: "www.github.com", Path: "/wgalyen/kimchi"}, "wgalyen", "kimchi", true},
		{"wrong host", domain.Uri{Kind: domain.KindWeb, Host: "gitlab.com", Path: "/wgalyen/kimchi"}, "", "", false},
		{"mail kind", domain.Uri{Kind: domain.KindMail}, "", "", false},
		{"bare host", domain.Uri{Kind: domain.KindWeb, Host: "github.com", Path: "/"}, "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, ok := IsGitHubRepoURL(tc.uri)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantOwner, owner)
			assert.Equal(t, tc.wantRepo, repo)
		})
	}
}

func TestRepoExists_Found(t *testing.T) {
	exec := &fakeExecutor{resp: domain.Response{Code: 200, Status: domain.StatusOk}}
	c := New(exec, "token123")
	resp, err := c.RepoExists(context.Background(), "wgalyen", "kimchi")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOk, resp.Status)
	assert.Equal(t, "https://api.github.com/repos/wgalyen/kimchi", exec.last.Uri.Raw)
	assert.Equal(t, "token123", exec.last.BearerToken)
}

func TestRepoExists_Missing(t *testing.T) {
	exec := &fakeExecutor{resp: domain.Response{Code: 404}}
	c := New(exec, "")
	resp, err := c.RepoExists(context.Background(), "wgalyen", "nonexistent")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, resp.Status)
	assert.Equal(t, "missing_repo", resp.Reason)
}

func TestRepoExists_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockExec := mocks.NewMockHttpClient(ctrl)
	mockExec.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		Return(domain.Response{}, assert.AnError)

	c := New(mockExec, "token123")
	_, err := c.RepoExists(context.Background(), "wgalyen", "kimchi")
	assert.ErrorIs(t, err, assert.AnError)
}
