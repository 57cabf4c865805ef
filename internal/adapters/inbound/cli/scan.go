package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/config"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/docker"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/gitinfo"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/history"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/report"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/tui"
	"github.com/phalanx-sec/phalanx/internal/application"
	"github.com/phalanx-sec/phalanx/internal/domain"
	"github.com/phalanx-sec/phalanx/internal/logging"
)

func newScanCmd() *cobra.Command {
	var (
		outputPath  string
		jsonOutput  bool
		verbose     bool
		skipBuild   bool
		tools       []string
		showHistory bool
		dockerDir   string
		ciMode      bool
		maxCritical int
		maxHigh     int
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a PHP project and produce a combined report",
		Long:  "Run Psalm, psecio/parse and ProgPilot in Docker against a PHP project and aggregate their findings into one normalized JSON report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			log, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

			hist := history.New()
			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			if err := application.ValidateTargetDir(absPath); err != nil {
				return err
			}

			loader := withToolFilter(config.New(), tools)
			cfg, err := loader.Load(absPath)
			if err != nil {
				return err
			}

			runner := docker.New(cfg, log)
			if !runner.Available(cmd.Context()) {
				return fmt.Errorf("container runtime %q not found; Docker is required to run the scanners", runner.RuntimeBin())
			}
			if !skipBuild {
				if err := runner.EnsureImage(cmd.Context(), dockerDir); err != nil {
					return fmt.Errorf("preparing scanner image: %w", err)
				}
			}

			svc := application.NewScanService(runner, loader, log)
			rep, err := svc.ScanProject(cmd.Context(), absPath)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			// Attach git commit hash if the target is a repository
			gi := gitinfo.New()
			if hash, err := gi.CommitHash(absPath); err == nil {
				rep.Summary.CommitHash = hash
			}

			// Save to history
			entry := domain.ScanEntry{
				Timestamp:     time.Now().Format(time.RFC3339),
				CommitHash:    rep.Summary.CommitHash,
				TotalFindings: rep.Summary.TotalFindings,
				Critical:      rep.Summary.BySeverity[domain.SeverityCritical],
				High:          rep.Summary.BySeverity[domain.SeverityHigh],
			}
			_ = hist.Save(absPath, entry) // best-effort

			written, err := report.Write(outputPath, rep)
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			log.Infof("combined report written to %s", written)

			if jsonOutput {
				if err := renderJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(rep))
			}

			if ciMode {
				return checkThresholds(rep.Summary, maxCritical, maxHigh)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path for the combined JSON report (default: timestamped in cwd)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON instead of the terminal summary")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Assume the scanner image already exists")
	cmd.Flags().StringSliceVar(&tools, "tools", nil, "Subset of tools to run (psalm, parse, progpilot)")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show scan history for the project")
	cmd.Flags().StringVar(&dockerDir, "dockerfile-dir", ".", "Directory containing the scanner image Dockerfile")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when severity thresholds are exceeded")
	cmd.Flags().IntVar(&maxCritical, "max-critical", 0, "Maximum critical findings allowed in CI mode")
	cmd.Flags().IntVar(&maxHigh, "max-high", -1, "Maximum high findings allowed in CI mode (-1 = unlimited)")

	return cmd
}

func renderJSON(cmd *cobra.Command, rep *domain.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func checkThresholds(s domain.Summary, maxCritical, maxHigh int) error {
	if c := s.BySeverity[domain.SeverityCritical]; c > maxCritical {
		return fmt.Errorf("%d critical findings exceed the limit of %d", c, maxCritical)
	}
	if h := s.BySeverity[domain.SeverityHigh]; maxHigh >= 0 && h > maxHigh {
		return fmt.Errorf("%d high findings exceed the limit of %d", h, maxHigh)
	}
	return nil
}

// toolFilterLoader overlays the --tools flag on top of the file config.
type toolFilterLoader struct {
	base  domain.ConfigLoader
	tools []string
}

func withToolFilter(base domain.ConfigLoader, tools []string) domain.ConfigLoader {
	if len(tools) == 0 {
		return base
	}
	return toolFilterLoader{base: base, tools: tools}
}

func (l toolFilterLoader) Load(projectPath string) (domain.ScanConfig, error) {
	cfg, err := l.base.Load(projectPath)
	if err != nil {
		return cfg, err
	}
	cfg.Tools = l.tools
	if err := cfg.Validate(); err != nil {
		return domain.ScanConfig{}, err
	}
	return cfg, nil
}
