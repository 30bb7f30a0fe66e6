package repos

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// UpdateRequest edits repository settings. Nil fields are left unchanged.
// Topics are edited through ReplaceTopics.
type UpdateRequest struct {
	Name                *string `json:"name,omitempty"`
	Description         *string `json:"description,omitempty"`
	Homepage            *string `json:"homepage,omitempty"`
	Private             *bool   `json:"private,omitempty"`
	Visibility          *string `json:"visibility,omitempty"`
	HasIssues           *bool   `json:"has_issues,omitempty"`
	HasProjects         *bool   `json:"has_projects,omitempty"`
	HasWiki             *bool   `json:"has_wiki,omitempty"`
	IsTemplate          *bool   `json:"is_template,omitempty"`
	DefaultBranch       *string `json:"default_branch,omitempty"`
	AllowSquashMerge    *bool   `json:"allow_squash_merge,omitempty"`
	AllowMergeCommit    *bool   `json:"allow_merge_commit,omitempty"`
	AllowRebaseMerge    *bool   `json:"allow_rebase_merge,omitempty"`
	AllowAutoMerge      *bool   `json:"allow_auto_merge,omitempty"`
	DeleteBranchOnMerge *bool   `json:"delete_branch_on_merge,omitempty"`
	Archived            *bool   `json:"archived,omitempty"`
}

// CreateRequest creates a repository for the authenticated user. Name is
// required.
type CreateRequest struct {
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	Homepage            *string `json:"homepage,omitempty"`
	Private             *bool   `json:"private,omitempty"`
	Visibility          *string `json:"visibility,omitempty"`
	HasIssues           *bool   `json:"has_issues,omitempty"`
	HasProjects         *bool   `json:"has_projects,omitempty"`
	HasWiki             *bool   `json:"has_wiki,omitempty"`
	IsTemplate          *bool   `json:"is_template,omitempty"`
	TeamID              *int64  `json:"team_id,omitempty"`
	AutoInit            *bool   `json:"auto_init,omitempty"`
	GitignoreTemplate   *string `json:"gitignore_template,omitempty"`
	LicenseTemplate     *string `json:"license_template,omitempty"`
	AllowSquashMerge    *bool   `json:"allow_squash_merge,omitempty"`
	AllowMergeCommit    *bool   `json:"allow_merge_commit,omitempty"`
	AllowRebaseMerge    *bool   `json:"allow_rebase_merge,omitempty"`
	AllowAutoMerge      *bool   `json:"allow_auto_merge,omitempty"`
	DeleteBranchOnMerge *bool   `json:"delete_branch_on_merge,omitempty"`
}

// OrgListOptions filters ListForOrg.
type OrgListOptions struct {
	// Type is one of all, public, private, forks, sources, member, internal.
	Type string `url:"type,omitempty"`
	// Sort is one of created, updated, pushed, full_name.
	Sort string `url:"sort,omitempty"`
	// Direction is asc or desc.
	Direction string `url:"direction,omitempty"`
}

// UserListOptions filters ListForAuthenticatedUser.
type UserListOptions struct {
	Visibility  string `url:"visibility,omitempty"`
	Affiliation string `url:"affiliation,omitempty"`
	Type        string `url:"type,omitempty"`
	Sort        string `url:"sort,omitempty"`
	Direction   string `url:"direction,omitempty"`
	// Since and Before are ISO 8601 timestamps.
	Since  string `url:"since,omitempty"`
	Before string `url:"before,omitempty"`
}

// ContributorListOptions filters ListContributors.
type ContributorListOptions struct {
	// Anon includes anonymous contributors.
	Anon bool `url:"anon,omitempty"`
}
