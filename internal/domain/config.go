package domain

import "fmt"

// ScanConfig controls how the scanners are executed. It is loaded from
// .phalanx.yaml in the scanned project, falling back to defaults.
type ScanConfig struct {
	// Image is the Docker image containing the three scanners.
	Image string `yaml:"image"`
	// Runtime is the container runtime binary, "docker" or "podman".
	// Empty means resolve via PHALANX_CONTAINER_RUNTIME, then "docker".
	Runtime string `yaml:"runtime"`
	// TimeoutSeconds bounds each tool's container run.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// BuildTimeoutSeconds bounds the one-time image build.
	BuildTimeoutSeconds int `yaml:"build_timeout_seconds"`
	// Tools optionally restricts which scanners run. Empty means all.
	Tools []string `yaml:"tools"`
	// ProgpilotLevel is passed to ProgPilot's --level flag.
	ProgpilotLevel string `yaml:"progpilot_level"`
}

func DefaultConfig() ScanConfig {
	return ScanConfig{
		Image:               "phalanx",
		TimeoutSeconds:      300,
		BuildTimeoutSeconds: 600,
		ProgpilotLevel:      "high",
	}
}

// Validate catches typos in user-supplied config before it is merged.
func (c ScanConfig) Validate() error {
	switch c.Runtime {
	case "", "docker", "podman":
	default:
		return fmt.Errorf("unknown runtime %q (want docker or podman)", c.Runtime)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	if c.BuildTimeoutSeconds < 0 {
		return fmt.Errorf("build_timeout_seconds must not be negative")
	}
	for _, t := range c.Tools {
		if !KnownTool(t) {
			return fmt.Errorf("unknown tool %q (want psalm, parse or progpilot)", t)
		}
	}
	return nil
}

// EnabledTools returns the tools to run, in fixed report order, honoring the
// optional Tools filter.
func (c ScanConfig) EnabledTools() []Tool {
	if len(c.Tools) == 0 {
		return Tools()
	}
	wanted := make(map[Tool]bool, len(c.Tools))
	for _, t := range c.Tools {
		wanted[Tool(t)] = true
	}
	var out []Tool
	for _, t := range Tools() {
		if wanted[t] {
			out = append(out, t)
		}
	}
	return out
}
