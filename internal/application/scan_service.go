package application

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/phalanx-sec/phalanx/internal/domain"
	"github.com/phalanx-sec/phalanx/internal/domain/normalize"
	"github.com/phalanx-sec/phalanx/internal/logging"
)

// ScanService orchestrates the pipeline:
// load config → run each tool → decode → normalize → aggregate.
//
// A tool that fails to run, times out, or emits garbage contributes zero
// findings; the other tools and the aggregation step always proceed. The
// service never returns an error once the target has been validated.
type ScanService struct {
	runner       domain.ToolRunner
	configLoader domain.ConfigLoader
	log          *zap.SugaredLogger
}

func NewScanService(runner domain.ToolRunner, configLoader domain.ConfigLoader, log *zap.SugaredLogger) *ScanService {
	if log == nil {
		log = logging.Nop()
	}
	return &ScanService{
		runner:       runner,
		configLoader: configLoader,
		log:          log,
	}
}

// ScanProject runs all enabled tools against targetPath and aggregates their
// findings into a single report.
func (s *ScanService) ScanProject(ctx context.Context, targetPath string) (*domain.Report, error) {
	if err := ValidateTargetDir(targetPath); err != nil {
		return nil, err
	}

	cfg, err := s.configLoader.Load(targetPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	groups := make([][]domain.Finding, 0, len(cfg.EnabledTools()))
	for _, tool := range cfg.EnabledTools() {
		s.log.Infof("running %s scanner", tool)
		raw, err := s.runner.Run(ctx, tool, targetPath)
		if err != nil {
			s.log.Warnf("%s failed, reporting zero findings: %v", tool, err)
			raw = nil
		}
		groups = append(groups, s.normalizeTool(tool, raw))
	}

	return domain.Aggregate(groups...), nil
}

// NormalizeRaw normalizes a single tool's raw JSON blob without running any
// containers. Used by the MCP normalize tool.
func (s *ScanService) NormalizeRaw(tool domain.Tool, raw []byte) ([]domain.Finding, error) {
	if _, ok := normalize.SpecFor(tool); !ok {
		return nil, fmt.Errorf("unknown tool %q", tool)
	}
	return s.normalizeTool(tool, raw), nil
}

func (s *ScanService) normalizeTool(tool domain.Tool, raw []byte) []domain.Finding {
	spec, _ := normalize.SpecFor(tool)
	findings, skipped := normalize.Run(spec, normalize.Decode(raw))
	for _, msg := range skipped {
		s.log.Warnf("skipping malformed entry: %s", msg)
	}
	s.log.Infof("%s: %d findings", tool, len(findings))
	return findings
}

// ValidateTargetDir checks that path exists, is a directory and is readable.
func ValidateTargetDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("target %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %s is not a directory", path)
	}
	if _, err := os.ReadDir(path); err != nil {
		return fmt.Errorf("target %s is not readable: %w", path, err)
	}
	return nil
}
