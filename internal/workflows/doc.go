// Package workflows contains the orchestration logic behind each CLI
// command, decoupled from flag parsing and terminal output.
//
// Each workflow takes a Deps struct of explicit collaborators (key store,
// hosting site, deploy runner, logger) plus an Options struct, and returns
// a Result struct. The cmd layer owns presentation; workflows own
// sequencing and the pipeline invariants:
//
//   - Publish is strictly sequential: encrypt, store key, inject, deploy.
//     Each step blocks until the previous step's output exists.
//   - The key store write is fail-closed: ciphertext never reaches the
//     template while the key is not durably stored.
//   - The template returns to its pristine placeholder state on every
//     exit path, success or failure.
package workflows
