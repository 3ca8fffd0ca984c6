// Package logger provides leveled logging for privydash CLI commands.
//
// The logger supports verbosity levels controlled by command-line flags.
// Output is formatted with colored semantic prefixes.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Usage
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Encrypted %d bytes", size)
package logger
