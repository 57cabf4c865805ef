package domain

import "context"

// ToolRunner executes one scanner against a target directory and returns its
// raw stdout. Implementations must tolerate non-zero exit codes (most SAST
// tools exit non-zero when they find issues) and return "{}" when the tool
// produced nothing usable.
type ToolRunner interface {
	Run(ctx context.Context, tool Tool, targetDir string) ([]byte, error)
}

// ConfigLoader loads the scan configuration for a project.
type ConfigLoader interface {
	Load(projectPath string) (ScanConfig, error)
}

// ScanHistory persists per-project scan summaries.
type ScanHistory interface {
	Save(projectPath string, entry ScanEntry) error
	Load(projectPath string) ([]ScanEntry, error)
}

// GitInfo provides git metadata about the scanned project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}
