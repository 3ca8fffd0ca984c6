package workflows

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/riverfold/privydash/internal/hosting"
)

// Check is one preflight diagnostic.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Doctor runs the preflight diagnostics for a publish: configuration,
// credentials, template contract, and hosting tool availability. It makes
// no network calls and mutates nothing.
func Doctor(ctx context.Context, deps Deps) []Check {
	var checks []Check

	checks = append(checks, Check{
		Name:   "key store credentials",
		OK:     deps.Env.ServiceAccountJSON != "",
		Detail: "FIREBASE_SERVICE_ACCOUNT",
	})

	recipients := deps.Env.Recipients()
	checks = append(checks, Check{
		Name:   "authorized recipients",
		OK:     len(recipients) > 0,
		Detail: fmt.Sprintf("%d configured", len(recipients)),
	})

	templateCheck := Check{Name: "hosting template"}
	content, err := os.ReadFile(deps.Site.TemplatePath())
	switch {
	case err != nil:
		templateCheck.Detail = fmt.Sprintf("%s not readable", deps.Site.TemplatePath())
	case !strings.Contains(string(content), hosting.TitlePlaceholder):
		templateCheck.Detail = "title placeholder missing"
	case !strings.Contains(string(content), hosting.DataPlaceholder):
		templateCheck.Detail = "data placeholder missing"
	default:
		templateCheck.OK = true
		templateCheck.Detail = deps.Site.TemplatePath()
	}
	checks = append(checks, templateCheck)

	artifactCheck := Check{Name: "report artifact", Detail: deps.Config.App.ArtifactPath}
	if info, err := os.Stat(deps.Config.App.ArtifactPath); err == nil && info.Size() > 0 {
		artifactCheck.OK = true
	}
	checks = append(checks, artifactCheck)

	toolCheck := Check{Name: "hosting command"}
	if path, err := exec.LookPath("firebase"); err == nil {
		toolCheck.OK = true
		toolCheck.Detail = path
	} else {
		toolCheck.Detail = "not on PATH (the shell-profile fallback may still find it)"
	}
	checks = append(checks, toolCheck)

	projectCheck := Check{Name: "project identifier"}
	switch {
	case deps.Env.ProjectID != "":
		projectCheck.OK = true
		projectCheck.Detail = deps.Env.ProjectID + " (environment)"
	case deps.Config.Hosting.ProjectID != "":
		projectCheck.OK = true
		projectCheck.Detail = deps.Config.Hosting.ProjectID + " (privydash.toml)"
	default:
		if url, ok := hosting.FallbackURL(deps.WorkDir); ok {
			projectCheck.OK = true
			projectCheck.Detail = url + " (.firebaserc)"
		} else {
			projectCheck.Detail = "no project id configured"
		}
	}
	checks = append(checks, projectCheck)

	return checks
}
