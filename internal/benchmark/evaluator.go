package benchmark

import (
	"context"
	"log/slog"
	"time"

	"mpcbench/internal/telemetry"
)

// WorkloadDriver is the narrow surface the evaluator drives. Each trial
// regenerates the shared on-disk inputs, so calls must never overlap; the
// evaluator guarantees that by running everything sequentially.
type WorkloadDriver interface {
	RegenerateInputs(ctx context.Context, users, items, queries int) error
	RunTrial(ctx context.Context) (time.Duration, error)
}

// Evaluator measures benchmark points and runs sweep passes over them.
type Evaluator struct {
	Driver WorkloadDriver
	Log    *slog.Logger
}

func NewEvaluator(d WorkloadDriver) *Evaluator {
	return &Evaluator{Driver: d, Log: slog.Default()}
}

// EvaluatePoint runs repetitions sequential trials at one parameter point
// and reduces them to a Record. Zero repetitions is a zero-trial no-op with
// an average of 0.0. The sweep label is attached by the caller.
func (e *Evaluator) EvaluatePoint(ctx context.Context, p Point, repetitions int) (Record, error) {
	var total time.Duration
	for rep := 0; rep < repetitions; rep++ {
		e.log().Info("running trial",
			"rep", rep+1, "repetitions", repetitions,
			"users", p.Users, "items", p.Items, "queries", p.Queries)
		if err := e.Driver.RegenerateInputs(ctx, p.Users, p.Items, p.Queries); err != nil {
			return Record{}, err
		}
		duration, err := e.Driver.RunTrial(ctx)
		if err != nil {
			return Record{}, err
		}
		total += duration
	}

	avg := 0.0
	if repetitions > 0 {
		avg = total.Seconds() / float64(repetitions)
	}
	perQueryMs := 0.0
	if p.Queries > 0 {
		perQueryMs = avg / float64(p.Queries) * 1000.0
	}

	telemetry.PointsEvaluated.Inc()
	return Record{
		Users:         p.Users,
		Items:         p.Items,
		Queries:       p.Queries,
		AvgRuntimeSec: avg,
		PerQueryMs:    perQueryMs,
	}, nil
}

// RunItemSweeps evaluates every point of every item sweep in definition
// order, values in the order given. The first failed trial aborts the pass.
func (e *Evaluator) RunItemSweeps(ctx context.Context, sweeps []ItemSweep, queries, repetitions int) ([]Record, error) {
	var records []Record
	for _, sweep := range sweeps {
		e.log().Info("starting sweep", "label", sweep.Label, "fixed_users", sweep.FixedUsers, "varying", "items")
		for _, items := range sweep.Items {
			rec, err := e.EvaluatePoint(ctx, Point{Users: sweep.FixedUsers, Items: items, Queries: queries}, repetitions)
			if err != nil {
				return nil, err
			}
			rec.SweepLabel = sweep.Label
			records = append(records, rec)
		}
	}
	return records, nil
}

// RunUserSweeps is the user-count counterpart of RunItemSweeps. The two
// passes are orthogonal experiments over the same measurement primitive,
// not a combined grid.
func (e *Evaluator) RunUserSweeps(ctx context.Context, sweeps []UserSweep, queries, repetitions int) ([]Record, error) {
	var records []Record
	for _, sweep := range sweeps {
		e.log().Info("starting sweep", "label", sweep.Label, "fixed_items", sweep.FixedItems, "varying", "users")
		for _, users := range sweep.Users {
			rec, err := e.EvaluatePoint(ctx, Point{Users: users, Items: sweep.FixedItems, Queries: queries}, repetitions)
			if err != nil {
				return nil, err
			}
			rec.SweepLabel = sweep.Label
			records = append(records, rec)
		}
	}
	return records, nil
}

func (e *Evaluator) log() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}
