// Package configs manages privydash configuration.
//
// Configuration comes from two sources:
//
//   - privydash.toml in the working directory: title, artifact path,
//     hosting directory, template filename, project id.
//   - Environment variables for secrets and CI overrides:
//     FIREBASE_SERVICE_ACCOUNT, FIREBASE_TOKEN, FIREBASE_PROJECT_ID,
//     RECIPIENT_EMAIL.
//
// Both are loaded once at process start and passed by reference into the
// pipeline so tests can substitute their own values.
package configs
