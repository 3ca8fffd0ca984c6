package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the project configuration file looked up in the
// working directory.
const ConfigFileName = "privydash.toml"

// ProjectConfig holds the publish pipeline configuration.
type ProjectConfig struct {
	App     AppConfig     `toml:"app"`
	Hosting HostingConfig `toml:"hosting"`
}

type AppConfig struct {
	// Title is injected into the template title placeholder.
	Title string `toml:"title"`

	// ArtifactPath is the report artifact consumed by publish. The publish
	// command's --report flag overrides it.
	ArtifactPath string `toml:"artifact_path"`
}

type HostingConfig struct {
	// PublicDir is the static hosting directory containing the template.
	PublicDir string `toml:"public_dir"`

	// Template is the template filename inside PublicDir.
	Template string `toml:"template"`

	// ProjectID is the hosting project identifier. The FIREBASE_PROJECT_ID
	// environment variable takes precedence when set.
	ProjectID string `toml:"project_id"`
}

// LoadProjectConfig loads privydash.toml from the given directory.
// A missing file yields the defaults rather than an error so the tool
// works in a freshly cloned repository.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	config := &ProjectConfig{
		App: AppConfig{
			Title:        "Expense Dashboard",
			ArtifactPath: "output/dashboard.html",
		},
		Hosting: HostingConfig{
			PublicDir: "firebase_public",
			Template:  "index.html",
		},
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	if config.Hosting.PublicDir == "" {
		config.Hosting.PublicDir = "firebase_public"
	}
	if config.Hosting.Template == "" {
		config.Hosting.Template = "index.html"
	}

	return config, nil
}
