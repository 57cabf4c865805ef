// Package docker runs the three PHP scanners inside a hardened container
// and hands their raw stdout to the normalization pipeline.
package docker

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phalanx-sec/phalanx/internal/domain"
	"github.com/phalanx-sec/phalanx/internal/logging"
)

const runtimeEnv = "PHALANX_CONTAINER_RUNTIME"

// Runner implements domain.ToolRunner by shelling out to docker (or podman).
type Runner struct {
	cfg domain.ScanConfig
	log *zap.SugaredLogger
}

func New(cfg domain.ScanConfig, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{cfg: cfg, log: log}
}

// RuntimeBin resolves the container runtime binary. An explicit config
// value wins, then the PHALANX_CONTAINER_RUNTIME env var, then "docker".
func (r *Runner) RuntimeBin() string {
	if r.cfg.Runtime != "" {
		return r.cfg.Runtime
	}
	if env := os.Getenv(runtimeEnv); env != "" {
		return env
	}
	return "docker"
}

// Available reports whether the container runtime responds.
func (r *Runner) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, r.RuntimeBin(), "--version").Run() == nil
}

// EnsureImage builds the scanner image from dockerfileDir if it is not
// already present.
func (r *Runner) EnsureImage(ctx context.Context, dockerfileDir string) error {
	bin := r.RuntimeBin()

	var out bytes.Buffer
	check := exec.CommandContext(ctx, bin, "images", "-q", r.cfg.Image)
	check.Stdout = &out
	if err := check.Run(); err != nil {
		return fmt.Errorf("checking for image %s: %w", r.cfg.Image, err)
	}
	if strings.TrimSpace(out.String()) != "" {
		return nil
	}

	r.log.Infof("building image %s from %s", r.cfg.Image, dockerfileDir)
	buildCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.BuildTimeoutSeconds)*time.Second)
	defer cancel()

	build := exec.CommandContext(buildCtx, bin, "build", "-t", r.cfg.Image, dockerfileDir)
	build.Stdout = os.Stderr
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("building image %s: %w", r.cfg.Image, err)
	}
	return nil
}

// Run executes one tool's container against targetDir and returns its raw
// stdout. A non-zero exit with output on stdout is not an error: Psalm and
// friends exit non-zero whenever they find issues. Timeouts and empty
// output degrade to the "{}" placeholder.
func (r *Runner) Run(ctx context.Context, tool domain.Tool, targetDir string) ([]byte, error) {
	args, err := containerArgs(r.cfg, tool, targetDir)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(r.cfg.TimeoutSeconds) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.RuntimeBin(), args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return []byte("{}"), fmt.Errorf("%s timed out after %s", tool, timeout)
	}
	if runErr != nil && stdout.Len() == 0 {
		return []byte("{}"), fmt.Errorf("%s: %w: %s", tool, runErr, firstLine(stderr.String()))
	}
	if runErr != nil {
		r.log.Debugf("%s exited non-zero with output, treating as findings: %v", tool, runErr)
	}
	if stdout.Len() == 0 {
		return []byte("{}"), nil
	}
	return stdout.Bytes(), nil
}

// containerArgs builds the docker run argv for one tool. The target is
// always mounted read-only and the container runs without extra privileges.
func containerArgs(cfg domain.ScanConfig, tool domain.Tool, targetDir string) ([]string, error) {
	base := []string{
		"run", "--rm",
		"--security-opt=no-new-privileges",
		"--cap-drop=ALL",
	}

	switch tool {
	case domain.ToolPsalm:
		return append(base,
			"-v", targetDir+":/app:ro",
			cfg.Image,
			"psalm", "--output-format=json",
		), nil
	case domain.ToolParse:
		return append(base,
			"-v", targetDir+":/app:ro",
			cfg.Image,
			"parse", "scan", "/app", "--format", "json",
		), nil
	case domain.ToolProgpilot:
		return append(base,
			"-v", targetDir+":/workspace:ro",
			cfg.Image,
			"php", "/home/phalanx/progpilot/src/ProgPilot.php",
			"--level", cfg.ProgpilotLevel,
			"--target", "/workspace",
			"--output=json",
		), nil
	}
	return nil, fmt.Errorf("no container command for tool %q", tool)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
