// Package viewer models the client decryption runtime: the logic that
// runs in a viewer's environment after loading the published page.
//
// # Flow
//
// A session authenticates the viewer with an external identity provider,
// fetches the authorization document from the key store (whose own
// server-side rules grant or deny the read), decrypts the embedded
// payload with the fetched key, and mounts the rendered markup.
//
// # Trust Boundary
//
// Authorization is decided entirely by the key store's rule engine. The
// session never re-validates the viewer's identity against a local list,
// never caches a previous grant, and treats any denied read as terminal:
// deny by default, grant only via the external rule check.
//
// # Script Mounting
//
// Rendered markup may carry scripts. They mount in two waves: external
// script references load first, and inline scripts execute only after all
// external loads have settled, preserving ordering dependencies between
// library scripts and the inline code that calls into them.
package viewer
