package rank

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ksnavely/dmp/internal/table"
)

// Default input files, read from the working directory.
const (
	DefaultDMPFile   = "dmp.csv"
	DefaultTakenFile = "total_taken.csv"
)

// Options configures one pipeline run.
type Options struct {
	DMPFile   string
	TakenFile string
	Rules     Rules
	Score     ScoreOptions
	// Top limits rows per report; 0 means DefaultTop.
	Top int
	// RunID tags the run; a random id is generated when empty.
	RunID  string
	Logger *slog.Logger
}

// DefaultOptions returns the stock inputs and rules.
func DefaultOptions() Options {
	return Options{
		DMPFile:   DefaultDMPFile,
		TakenFile: DefaultTakenFile,
		Rules:     DefaultRules(),
		Score:     ScoreOptions{CapPerSqMile: DefaultCapPerSqMile},
		Top:       DefaultTop,
	}
}

// Result carries every stage output of a successful run.
type Result struct {
	RunID   string
	Joined  int
	Scored  *Scored
	Reports []Report
}

// Process loads both tables, joins, filters, scores and ranks them. Any error
// aborts the run; no partial result is returned.
func Process(opt Options) (*Result, error) {
	runID := opt.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := opt.Logger
	if logger == nil {
		logger = discardLogger()
	}
	logger = logger.With("run_id", runID)

	dmp, err := table.Load(opt.DMPFile, table.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("load permits: %w", err)
	}
	taken, err := table.Load(opt.TakenFile, table.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("load harvest: %w", err)
	}
	logger.Debug("tables loaded", "dmp_rows", dmp.Len(), "taken_rows", taken.Len())

	joined, err := table.Join(dmp, taken)
	if err != nil {
		return nil, err
	}
	filtered, err := Filter(joined, opt.Rules, logger)
	if err != nil {
		return nil, err
	}
	scored, err := Score(filtered, opt.Score)
	if err != nil {
		return nil, err
	}
	logger.Info("units scored", "joined", joined.Len(), "scored", len(scored.Units))

	return &Result{
		RunID:   runID,
		Joined:  joined.Len(),
		Scored:  scored,
		Reports: Rank(scored, Views(), opt.Top),
	}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
