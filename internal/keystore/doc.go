// Package keystore manages the authorization document that pairs the
// per-publish encryption key with the authorized-identity allowlist.
//
// # Trust Boundary
//
// The document lives at a well-known path (config/dashboard) in an
// external document store. Who may read it is enforced entirely by the
// store's server-side security rules evaluating the authorizedEmails
// field. This package never re-validates identities client-side and never
// caches or special-cases any identity: deny by default, grant only via
// the external rule check.
//
// # Fail-Closed Write
//
// Put must succeed before the publish pipeline injects ciphertext into the
// template. If the key is not durably retrievable by authorized viewers,
// publishing the ciphertext would render the report permanently
// unreadable, so the pipeline aborts instead.
package keystore
