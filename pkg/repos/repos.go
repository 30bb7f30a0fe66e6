// Package repos implements the GitHub repositories endpoints on top of the
// core client.
package repos

import (
	"context"
	"sort"

	"github.com/Sternrassler/gh-rest-client/pkg/client"
	"github.com/Sternrassler/gh-rest-client/pkg/pagination"
)

// DefaultBatchSize is the page size used when a list call passes 0.
const DefaultBatchSize = 30

// Service groups the repository endpoints.
type Service struct {
	client *client.Client
}

// NewService returns a Service issuing requests through c.
func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

// Get fetches a repository.
func (s *Service) Get(ctx context.Context, owner, repo string) (*Repository, error) {
	return client.Get[*Repository](ctx, s.client, []string{"repos", owner, repo})
}

// Update edits a repository's settings.
func (s *Service) Update(ctx context.Context, owner, repo string, req *UpdateRequest) (*Repository, error) {
	if req == nil {
		req = &UpdateRequest{}
	}
	return client.Patch[*Repository](ctx, s.client, []string{"repos", owner, repo}, client.WithBody(req))
}

// Delete removes a repository. Requires admin access and, for OAuth, the
// delete_repo scope.
func (s *Service) Delete(ctx context.Context, owner, repo string) error {
	_, err := client.Delete[client.NoContent](ctx, s.client, []string{"repos", owner, repo})
	return err
}

// CreateForAuthenticatedUser creates a repository owned by the caller.
func (s *Service) CreateForAuthenticatedUser(ctx context.Context, req *CreateRequest) (*Repository, error) {
	if req == nil || req.Name == "" {
		return nil, &client.ConfigurationError{Field: "name", Reason: "repository name is required"}
	}
	return client.Post[*Repository](ctx, s.client, []string{"user", "repos"}, client.WithBody(req))
}

// EnableAutomatedSecurityFixes turns on automated security fixes.
func (s *Service) EnableAutomatedSecurityFixes(ctx context.Context, owner, repo string) error {
	_, err := client.Put[client.NoContent](ctx, s.client,
		[]string{"repos", owner, repo, "automated-security-fixes"},
		client.WithPreview(client.PreviewLondon))
	return err
}

// DisableAutomatedSecurityFixes turns off automated security fixes.
func (s *Service) DisableAutomatedSecurityFixes(ctx context.Context, owner, repo string) error {
	_, err := client.Delete[client.NoContent](ctx, s.client,
		[]string{"repos", owner, repo, "automated-security-fixes"},
		client.WithPreview(client.PreviewLondon))
	return err
}

// GetTopics returns the repository's topics.
func (s *Service) GetTopics(ctx context.Context, owner, repo string) ([]string, error) {
	topics, err := client.Get[Topics](ctx, s.client,
		[]string{"repos", owner, repo, "topics"},
		client.WithPreview(client.PreviewMercy))
	return topics.Names, err
}

// ReplaceTopics replaces all topics. An empty list clears them.
func (s *Service) ReplaceTopics(ctx context.Context, owner, repo string, names []string) ([]string, error) {
	if names == nil {
		names = []string{}
	}
	topics, err := client.Put[Topics](ctx, s.client,
		[]string{"repos", owner, repo, "topics"},
		client.WithPreview(client.PreviewMercy),
		client.WithBody(Topics{Names: names}))
	return topics.Names, err
}

// ListLanguages returns the languages of a repository, largest first.
func (s *Service) ListLanguages(ctx context.Context, owner, repo string) ([]Language, error) {
	raw, err := client.Get[map[string]int64](ctx, s.client, []string{"repos", owner, repo, "languages"})
	if err != nil {
		return nil, err
	}

	languages := make([]Language, 0, len(raw))
	for name, size := range raw {
		languages = append(languages, Language{Name: name, Bytes: size})
	}
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Bytes != languages[j].Bytes {
			return languages[i].Bytes > languages[j].Bytes
		}
		return languages[i].Name < languages[j].Name
	})
	return languages, nil
}

// ListContributors lists contributors sorted by commit count, most active
// first. GitHub may serve data a few hours old.
func (s *Service) ListContributors(owner, repo string, opts *ContributorListOptions, batchSize int) (*pagination.Paginator[Contributor], error) {
	return pagination.List[Contributor](s.client,
		[]string{"repos", owner, repo, "contributors"},
		batchSizeOrDefault(batchSize),
		client.WithQueryValues(opts))
}

// ListTags lists the repository's tags.
func (s *Service) ListTags(owner, repo string, batchSize int) (*pagination.Paginator[Tag], error) {
	return pagination.List[Tag](s.client,
		[]string{"repos", owner, repo, "tags"},
		batchSizeOrDefault(batchSize))
}

// ListForOrg lists the repositories of an organization.
func (s *Service) ListForOrg(org string, opts *OrgListOptions, batchSize int) (*pagination.Paginator[Repository], error) {
	return pagination.List[Repository](s.client,
		[]string{"orgs", org, "repos"},
		batchSizeOrDefault(batchSize),
		client.WithQueryValues(opts))
}

// ListForAuthenticatedUser lists repositories the caller can access.
func (s *Service) ListForAuthenticatedUser(opts *UserListOptions, batchSize int) (*pagination.Paginator[Repository], error) {
	return pagination.List[Repository](s.client,
		[]string{"user", "repos"},
		batchSizeOrDefault(batchSize),
		client.WithQueryValues(opts))
}

func batchSizeOrDefault(batchSize int) int {
	if batchSize == 0 {
		return DefaultBatchSize
	}
	return batchSize
}
