// Package emoji provides symbol constants for CLI status lines.
package emoji

const (
	// Success marks a target that synced completely.
	Success = "✓"

	// Error marks a failed target or run.
	Error = "✗"

	// Warning marks a partial outcome, such as a run stopped after some targets.
	Warning = "!"

	// DryRun marks a pass that submitted nothing.
	DryRun = "-"
)
