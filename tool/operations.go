// Package tool exposes the analysis engine as two externally invocable
// operations with validated structured input and structured output. Nothing
// in this package panics or lets an error escape unwrapped: hard failures
// and the "nothing changed" condition are both folded into the response
// shape so that hosts branch on fields, not on faults.
package tool

import (
	"context"
	"fmt"

	"github.com/penwyp/quickmit/analyzer"
	"github.com/penwyp/quickmit/collector"
	"github.com/penwyp/quickmit/formatter"
)

// NoChangesError is the error string reported when the working tree has
// nothing eligible to analyze.
const NoChangesError = "No changes detected to commit"

// CollectChangesRequest is the validated input of the collect-changes
// operation.
type CollectChangesRequest struct {
	RootDir string `json:"rootDir"`
}

func (r CollectChangesRequest) validate() error {
	if r.RootDir == "" {
		return fmt.Errorf("rootDir must be a non-empty string")
	}
	return nil
}

// CollectChanges returns the raw per-file diffs of the working tree, one
// record per changed non-excluded file, diff text verbatim from git. A
// clean tree yields an empty slice, not an error.
func (e *Engine) CollectChanges(ctx context.Context, req CollectChangesRequest) ([]collector.DiffRecord, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	_, records, err := e.collector.Collect(ctx, req.RootDir)
	if err != nil {
		if err == collector.ErrNoChanges {
			return []collector.DiffRecord{}, nil
		}
		return nil, err
	}
	return records, nil
}

// GenerateCommitMessageRequest is the validated input of the
// generate-commit-message operation.
type GenerateCommitMessageRequest struct {
	RootDir string `json:"rootDir"`
	Style   string `json:"style,omitempty"`
}

func (r GenerateCommitMessageRequest) validate() (formatter.Style, error) {
	if r.RootDir == "" {
		return "", fmt.Errorf("rootDir must be a non-empty string")
	}
	return formatter.ParseStyle(r.Style)
}

// GenerateCommitMessageResponse mirrors the wire shape of the
// generate-commit-message operation: on success Message is set alongside
// Changes and Analysis; otherwise Message is null and Error explains why.
type GenerateCommitMessageResponse struct {
	Message  *string             `json:"message"`
	Changes  *analyzer.ChangeSet `json:"changes,omitempty"`
	Analysis *analyzer.Analysis  `json:"analysis,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// GenerateCommitMessage runs the full pipeline and always returns a
// structured response; it never returns a Go error to the host.
func (e *Engine) GenerateCommitMessage(ctx context.Context, req GenerateCommitMessageRequest) GenerateCommitMessageResponse {
	style, err := req.validate()
	if err != nil {
		return GenerateCommitMessageResponse{Error: err.Error()}
	}

	res, err := e.Run(ctx, req.RootDir, style)
	if err != nil {
		if err == collector.ErrNoChanges {
			return GenerateCommitMessageResponse{Error: NoChangesError}
		}
		return GenerateCommitMessageResponse{Error: err.Error()}
	}

	return GenerateCommitMessageResponse{
		Message:  &res.Message,
		Changes:  &res.Changes,
		Analysis: &res.Analysis,
	}
}
