package rules

import (
	"context"
	"sync"

	"github.com/sofmeright/typefreight/src/lint"
	"github.com/sofmeright/typefreight/src/source"
	"github.com/zricethezav/gitleaks/v8/detect"
)

func init() {
	lint.Register("secrets", func() lint.Rule { return &secretsRule{} })
}

type secretsRule struct {
	once     sync.Once
	initErr  error
	detector *detect.Detector
}

func (r *secretsRule) Name() string                   { return "secrets" }
func (r *secretsRule) DefaultSeverity() lint.Severity { return lint.SeverityCritical }

func (r *secretsRule) Check(ctx context.Context, file lint.FileInfo, src *source.File) ([]lint.Finding, error) {
	// Lazy-init the detector once; Check runs concurrently across files.
	r.once.Do(func() {
		r.detector, r.initErr = detect.NewDetectorDefaultConfig()
	})
	if r.initErr != nil {
		return nil, r.initErr
	}

	hits := r.detector.DetectBytes(src.Content)
	if len(hits) == 0 {
		return nil, nil
	}

	findings := make([]lint.Finding, 0, len(hits))
	for _, h := range hits {
		findings = append(findings, lint.Finding{
			File:     file.Path,
			Line:     h.StartLine + 1, // gitleaks is 0-indexed
			Rule:     r.Name(),
			Severity: r.DefaultSeverity(),
			Message:  h.Description + " (" + h.RuleID + ")",
		})
	}
	return findings, nil
}
