// Package hosting manages the static hosting surface: the placeholder
// template, ciphertext injection, the deploy invocation, and restoring the
// template after every publish attempt.
//
// # Template Lifecycle
//
// The template carries two placeholders, __TITLE_PLACEHOLDER__ and
// __DASHBOARD_DATA_PLACEHOLDER__. Outside the brief publish window the
// on-disk file always contains the literal placeholders and never live
// ciphertext. Inject substitutes them in place; Restore rewrites the
// canonical content unconditionally afterwards. The template is the single
// mutable shared resource in the pipeline and is not safe for concurrent
// publish runs; AcquireLock enforces the one-run-at-a-time assumption.
//
// # Deploy Invocation
//
// The external hosting command is brittle to invoke: it may live on PATH
// (CI) or only inside an nvm-managed shell (local development). Deployer
// models this as an ordered chain of execution strategies, each returning
// a typed result, rather than nested error handling. A 120 second timeout
// applies to the whole chain, and timing out is a distinct failure from a
// non-zero exit.
//
// # URL Recovery
//
// A successful deploy announces "Hosting URL: <url>" on stdout, possibly
// wrapped in ANSI color codes. When no such line exists, the URL is
// synthesized from the default project in .firebaserc. When both fail the
// deploy may still have succeeded; callers receive ErrURLUnparseable and
// decide how to treat the ambiguity.
package hosting
