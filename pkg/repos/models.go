package repos

import "time"

// SimpleUser is the abbreviated user or organization object embedded in
// other resources.
type SimpleUser struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	NodeID    string `json:"node_id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	SiteAdmin bool   `json:"site_admin"`
}

// License is the license summary attached to a repository.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
	URL    string `json:"url,omitempty"`
	NodeID string `json:"node_id"`
}

// Permissions are the caller's permissions on a repository. Only present on
// authenticated requests.
type Permissions struct {
	Admin    bool `json:"admin"`
	Maintain bool `json:"maintain,omitempty"`
	Push     bool `json:"push"`
	Triage   bool `json:"triage,omitempty"`
	Pull     bool `json:"pull"`
}

// Repository is a GitHub repository.
type Repository struct {
	ID          int64      `json:"id"`
	NodeID      string     `json:"node_id"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Private     bool       `json:"private"`
	Owner       SimpleUser `json:"owner"`
	HTMLURL     string     `json:"html_url"`
	Description *string    `json:"description"`
	Fork        bool       `json:"fork"`
	URL         string     `json:"url"`
	Homepage    *string    `json:"homepage,omitempty"`
	Language    *string    `json:"language,omitempty"`
	Visibility  string     `json:"visibility,omitempty"`

	GitURL   string `json:"git_url,omitempty"`
	SSHURL   string `json:"ssh_url,omitempty"`
	CloneURL string `json:"clone_url,omitempty"`

	Size             int `json:"size,omitempty"`
	StargazersCount  int `json:"stargazers_count,omitempty"`
	WatchersCount    int `json:"watchers_count,omitempty"`
	ForksCount       int `json:"forks_count,omitempty"`
	OpenIssuesCount  int `json:"open_issues_count,omitempty"`
	NetworkCount     int `json:"network_count,omitempty"`
	SubscribersCount int `json:"subscribers_count,omitempty"`

	DefaultBranch string   `json:"default_branch,omitempty"`
	Topics        []string `json:"topics,omitempty"`

	HasIssues    bool `json:"has_issues"`
	HasProjects  bool `json:"has_projects"`
	HasWiki      bool `json:"has_wiki"`
	HasPages     bool `json:"has_pages"`
	HasDownloads bool `json:"has_downloads"`
	Archived     bool `json:"archived"`
	Disabled     bool `json:"disabled"`
	IsTemplate   bool `json:"is_template,omitempty"`

	AllowSquashMerge    *bool `json:"allow_squash_merge,omitempty"`
	AllowMergeCommit    *bool `json:"allow_merge_commit,omitempty"`
	AllowRebaseMerge    *bool `json:"allow_rebase_merge,omitempty"`
	AllowAutoMerge      *bool `json:"allow_auto_merge,omitempty"`
	DeleteBranchOnMerge *bool `json:"delete_branch_on_merge,omitempty"`

	License      *License     `json:"license,omitempty"`
	Organization *SimpleUser  `json:"organization,omitempty"`
	Permissions  *Permissions `json:"permissions,omitempty"`

	// Parent and Source are set when the repository is a fork.
	Parent *Repository `json:"parent,omitempty"`
	Source *Repository `json:"source,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	PushedAt  *time.Time `json:"pushed_at,omitempty"`
}

// Contributor is an entry of the contributors list. Anonymous contributors
// carry only Type, Name, Email and Contributions.
type Contributor struct {
	Login         string `json:"login,omitempty"`
	ID            int64  `json:"id,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	HTMLURL       string `json:"html_url,omitempty"`
	Type          string `json:"type"`
	SiteAdmin     bool   `json:"site_admin,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Contributions int    `json:"contributions"`
}

// Anonymous reports whether the contributor has no GitHub account.
func (c Contributor) Anonymous() bool {
	return c.Type == "Anonymous"
}

// Topics is the request and response body of the topics endpoints.
type Topics struct {
	Names []string `json:"names"`
}

// Tag is a repository tag.
type Tag struct {
	Name       string `json:"name"`
	ZipballURL string `json:"zipball_url"`
	TarballURL string `json:"tarball_url"`
	NodeID     string `json:"node_id"`
	Commit     struct {
		SHA string `json:"sha"`
		URL string `json:"url"`
	} `json:"commit"`
}

// Language is a language used in a repository with its size in bytes.
type Language struct {
	Name  string
	Bytes int64
}
