package configs

import (
	"os"
	"strings"
)

// Env holds credentials and overrides read from the environment once at
// process start. It is passed by reference into the pipeline rather than
// consulted ambiently.
type Env struct {
	// ServiceAccountJSON is the document store service account
	// (FIREBASE_SERVICE_ACCOUNT). Required for the key store.
	ServiceAccountJSON string

	// DeployToken authenticates the hosting CLI in CI (FIREBASE_TOKEN).
	DeployToken string

	// ProjectID overrides the configured hosting project (FIREBASE_PROJECT_ID).
	ProjectID string

	// RecipientEmails is the raw comma-separated allowlist (RECIPIENT_EMAIL).
	RecipientEmails string
}

// LoadEnv reads the environment variables the pipeline depends on.
func LoadEnv() *Env {
	return &Env{
		ServiceAccountJSON: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		DeployToken:        os.Getenv("FIREBASE_TOKEN"),
		ProjectID:          os.Getenv("FIREBASE_PROJECT_ID"),
		RecipientEmails:    os.Getenv("RECIPIENT_EMAIL"),
	}
}

// Recipients returns the normalized authorized-identity list: trimmed,
// lowercased, with empties dropped and duplicates removed in order.
// An empty result is valid; callers warn but proceed.
func (e *Env) Recipients() []string {
	return NormalizeEmails(strings.Split(e.RecipientEmails, ","))
}

// NormalizeEmails trims and lowercases each entry, dropping empty strings
// and duplicates while preserving first-seen order.
func NormalizeEmails(emails []string) []string {
	seen := make(map[string]bool)
	var normalized []string

	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		normalized = append(normalized, email)
	}

	return normalized
}
