package workflows

import (
	"context"

	"github.com/riverfold/privydash/internal/audit"
	"github.com/riverfold/privydash/internal/hosting"
)

// StatusResult summarizes the pipeline's current state.
type StatusResult struct {
	Template       hosting.TemplateState
	Locked         bool
	Title          string
	ProjectID      string
	Recipients     int
	HasCredentials bool
	HasDeployToken bool
	LastRun        *audit.Entry
}

// Status inspects the working tree and configuration without mutating
// anything.
func Status(ctx context.Context, deps Deps) (*StatusResult, error) {
	state, err := deps.Site.State()
	if err != nil {
		return nil, err
	}

	projectID := deps.Env.ProjectID
	if projectID == "" {
		projectID = deps.Config.Hosting.ProjectID
	}

	result := &StatusResult{
		Template:       state,
		Locked:         deps.Site.Locked(),
		Title:          deps.Config.App.Title,
		ProjectID:      projectID,
		Recipients:     len(deps.Env.Recipients()),
		HasCredentials: deps.Env.ServiceAccountJSON != "",
		HasDeployToken: deps.Env.DeployToken != "",
	}

	last, err := audit.LastEntry(deps.WorkDir)
	if err == nil {
		result.LastRun = last
	}

	return result, nil
}
