package azdo

import "time"

// Scope identifies where wiki pages live: a project plus one of its wikis.
type Scope struct {
	Project string `json:"project"`
	Wiki    string `json:"wiki"`
}

func (s Scope) String() string {
	if s.Wiki == "" {
		return s.Project
	}
	return s.Project + "/" + s.Wiki
}

// Project is a top-level Azure DevOps project.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Wiki is one wiki belonging to a project.
type Wiki struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Project   string `json:"project"`
	URL       string `json:"url,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// PageInfo is a wiki page as seen in listings: path and URL, plus the most
// recent activity day reported by the remote (zero when the remote reports
// no stats for the page).
type PageInfo struct {
	Path         string    `json:"path"`
	URL          string    `json:"url,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
}

// Page is a full wiki page including content and its concurrency token.
// ETag changes on every successful write; a stale ETag makes UpdatePage
// fail with a version conflict.
type Page struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	ETag    string `json:"etag"`
	URL     string `json:"url,omitempty"`
}

// WorkItem is the subset of work item fields the tools surface.
type WorkItem struct {
	ID          int    `json:"id"`
	Rev         int    `json:"rev,omitempty"`
	Title       string `json:"title"`
	State       string `json:"state,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Repository is a git repository within a project.
type Repository struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DefaultBranch string `json:"default_branch,omitempty"`
	WebURL        string `json:"web_url,omitempty"`
}

// RepoItem is a file or folder within a repository.
type RepoItem struct {
	Path     string `json:"path"`
	IsFolder bool   `json:"is_folder"`
	CommitID string `json:"commit_id,omitempty"`
}
