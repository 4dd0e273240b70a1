package tool

import (
	"context"

	"go.uber.org/zap"

	"github.com/penwyp/quickmit/analyzer"
	"github.com/penwyp/quickmit/collector"
	"github.com/penwyp/quickmit/formatter"
)

// Engine wires the collection, classification, analysis and formatting
// stages into one sequential pipeline. One call to Run is one analysis:
// every intermediate value is created fresh and discarded with the result,
// so an Engine is safe to reuse across invocations.
type Engine struct {
	collector *collector.Collector
	logger    *zap.Logger
}

// NewEngine creates an Engine. logger may be zap.NewNop() for silent use.
func NewEngine(col *collector.Collector, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{collector: col, logger: logger}
}

// Result is the successful outcome of one analysis run.
type Result struct {
	Message  string                 `json:"message"`
	Changes  analyzer.ChangeSet     `json:"changes"`
	Analysis analyzer.Analysis      `json:"analysis"`
	Records  []collector.DiffRecord `json:"-"`
}

// Run executes the full pipeline against dir. The caller distinguishes
// three outcomes: a Result, collector.ErrNoChanges when the working tree
// has nothing eligible to analyze, or any other error for a hard failure
// (bad path, not a repository, git unavailable).
func (e *Engine) Run(ctx context.Context, dir string, style formatter.Style) (*Result, error) {
	changes, records, err := e.collector.Collect(ctx, dir)
	if err != nil {
		return nil, err
	}

	cs := analyzer.Classify(changes)
	a := analyzer.Analyze(collector.CombinedDiff(records))
	e.logger.Debug("analysis complete",
		zap.Int("files", cs.Total()),
		zap.String("type", a.Type),
		zap.String("scope", a.Scope))

	return &Result{
		Message:  formatter.Format(style, cs, a),
		Changes:  cs,
		Analysis: a,
		Records:  records,
	}, nil
}
