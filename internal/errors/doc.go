// Package errors provides typed error values for the privydash application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Configuration errors: Missing credentials or settings (ErrConfigurationMissing)
//   - Key store errors: Authorization document failures (ErrKeyStoreWriteFailed, ErrAccessDenied)
//   - Template errors: Hosting template state (ErrTemplateMissing)
//   - Deploy errors: Hosting tool invocation (ErrDeployTimeout, ErrURLUnparseable)
//   - Crypto errors: Encryption/decryption failures (ErrDecryptFailed)
//
// # Usage
//
// Return errors from internal packages:
//
//	if svcAccount == "" {
//	    return errors.ErrConfigurationMissing
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Publish(ctx, deps, opts)
//	if errors.Is(err, perrors.ErrKeyStoreWriteFailed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %v", errors.ErrKeyStoreWriteFailed, err)
package errors
