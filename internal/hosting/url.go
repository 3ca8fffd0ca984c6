package hosting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// urlMarker is the line prefix the hosting tool uses to announce the
// published address.
const urlMarker = "Hosting URL:"

// firebasercName is the local project-identifier configuration consulted
// when the tool output carries no URL (CI environments where the file is
// present but the tool prints a terse summary).
const firebasercName = ".firebaserc"

// ansiEscape matches terminal color sequences in the common "ESC [ ... m"
// form, with or without the leading ESC byte. The hosting tool interleaves
// them with its output.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m|\[[0-9;]*m`)

// ParseHostingURL scans tool output line-by-line for the URL-announcing
// marker and returns the URL stripped of escape sequences.
func ParseHostingURL(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, urlMarker) {
			continue
		}

		idx := strings.LastIndex(line, urlMarker)
		url := strings.TrimSpace(line[idx+len(urlMarker):])
		url = strings.TrimSpace(ansiEscape.ReplaceAllString(url, ""))
		if url == "" {
			continue
		}
		return url, true
	}

	return "", false
}

// firebaserc mirrors the subset of the tool's project file we consult.
type firebaserc struct {
	Projects map[string]string `json:"projects"`
}

// FallbackURL synthesizes the canonical hosting URL from the default
// project identifier in .firebaserc under dir.
func FallbackURL(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, firebasercName))
	if err != nil {
		return "", false
	}

	var rc firebaserc
	if err := json.Unmarshal(content, &rc); err != nil {
		return "", false
	}

	project := rc.Projects["default"]
	if project == "" {
		return "", false
	}

	return "https://" + project + ".web.app", true
}
