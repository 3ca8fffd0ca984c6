// Package ui provides semantic text formatting for privydash CLI output.
//
// Each formatter names a kind of content rather than a color, so call
// sites read as intent:
//
//	ui.Code.Sprint("privydash publish")      // Commands
//	ui.Path.Sprint("https://proj.web.app")   // Paths and URLs
//	ui.Success.Sprint("✓")                    // Success indicators
//	ui.Error.Sprint("✗")                      // Error indicators
//	ui.Info.Sprint("→")                       // Hints
//	ui.Highlight.Sprint("user@example.com")  // User values
//	ui.Muted.Sprint("optional")              // De-emphasized text
//
// Colors are disabled when NO_COLOR is set or the terminal cannot render
// them. Formatters then fall back to text decorations: Code gets
// `backticks`, Highlight gets 'single quotes', Muted gets (parentheses),
// the rest pass through undecorated.
package ui
