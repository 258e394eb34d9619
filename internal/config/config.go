// Package config loads connection settings from the environment and holds
// the active project context for a running server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Environment variable names, shared with the validate-setup tooling.
const (
	EnvOrgURL  = "AZURE_DEVOPS_ORG_URL"
	EnvPAT     = "AZURE_DEVOPS_PAT"
	EnvProject = "AZURE_DEVOPS_PROJECT"
)

// Config is the validated connection configuration. It is read-only after
// startup; the mutable piece (active project) lives in ProjectContext.
type Config struct {
	// OrgURL is the organization URL, e.g. https://dev.azure.com/fabrikam.
	OrgURL string
	// PAT is the personal access token. Never logged.
	PAT string
	// DefaultProject seeds the project context when set.
	DefaultProject string
}

// FromEnv reads and validates configuration from the environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		OrgURL:         strings.TrimRight(strings.TrimSpace(os.Getenv(EnvOrgURL)), "/"),
		PAT:            strings.TrimSpace(os.Getenv(EnvPAT)),
		DefaultProject: strings.TrimSpace(os.Getenv(EnvProject)),
	}

	var missing []string
	if cfg.OrgURL == "" {
		missing = append(missing, EnvOrgURL)
	}
	if cfg.PAT == "" {
		missing = append(missing, EnvPAT)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if !strings.HasPrefix(cfg.OrgURL, "https://") && !strings.HasPrefix(cfg.OrgURL, "http://") {
		return nil, fmt.Errorf("%s must be a full URL, got %q", EnvOrgURL, cfg.OrgURL)
	}
	return cfg, nil
}

// ErrNoProject is returned when a tool needs a project but none was given
// and no project context is active.
var ErrNoProject = errors.New("no project given and no active project context; pass 'project' or call set_project_context")

// ProjectContext is the active-project selection shared by all tools within
// one server process. Tools receive it as an explicit dependency so the
// set/clear lifecycle stays testable in isolation.
type ProjectContext struct {
	mu      sync.RWMutex
	current string
}

// NewProjectContext creates a context, optionally pre-set to initial.
func NewProjectContext(initial string) *ProjectContext {
	return &ProjectContext{current: initial}
}

// Set makes project the active project for subsequent calls.
func (p *ProjectContext) Set(project string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = project
}

// Clear removes the active project.
func (p *ProjectContext) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ""
}

// Current returns the active project, or "" when none is set.
func (p *ProjectContext) Current() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Resolve returns explicit when non-empty, otherwise the active project.
// Returns ErrNoProject when neither is available.
func (p *ProjectContext) Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if cur := p.Current(); cur != "" {
		return cur, nil
	}
	return "", ErrNoProject
}
