package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDriver replays scripted trial durations and records the call sequence.
type stubDriver struct {
	durations []time.Duration
	trialIdx  int
	sequence  []string
	regenErr  error
	trialErr  error
}

func (s *stubDriver) RegenerateInputs(ctx context.Context, users, items, queries int) error {
	s.sequence = append(s.sequence, fmt.Sprintf("regen(%d,%d,%d)", users, items, queries))
	return s.regenErr
}

func (s *stubDriver) RunTrial(ctx context.Context) (time.Duration, error) {
	s.sequence = append(s.sequence, "trial")
	if s.trialErr != nil {
		return 0, s.trialErr
	}
	d := time.Duration(0)
	if s.trialIdx < len(s.durations) {
		d = s.durations[s.trialIdx]
	}
	s.trialIdx++
	return d, nil
}

func TestEvaluatePointAveragesTrials(t *testing.T) {
	// Two trials of 2.0s and 3.0s at 8 queries per run.
	driver := &stubDriver{durations: []time.Duration{2 * time.Second, 3 * time.Second}}
	eval := NewEvaluator(driver)

	rec, err := eval.EvaluatePoint(context.Background(), Point{Users: 16, Items: 32, Queries: 8}, 2)
	require.NoError(t, err)

	assert.Equal(t, 16, rec.Users)
	assert.Equal(t, 32, rec.Items)
	assert.Equal(t, 8, rec.Queries)
	assert.InDelta(t, 2.5, rec.AvgRuntimeSec, 1e-9)
	assert.InDelta(t, 312.5, rec.PerQueryMs, 1e-9)
}

func TestEvaluatePointRegeneratesBeforeEveryTrial(t *testing.T) {
	driver := &stubDriver{durations: []time.Duration{time.Second, time.Second}}
	eval := NewEvaluator(driver)

	_, err := eval.EvaluatePoint(context.Background(), Point{Users: 4, Items: 8, Queries: 2}, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"regen(4,8,2)", "trial", "regen(4,8,2)", "trial"}, driver.sequence)
}

func TestEvaluatePointZeroRepetitions(t *testing.T) {
	driver := &stubDriver{}
	eval := NewEvaluator(driver)

	rec, err := eval.EvaluatePoint(context.Background(), Point{Users: 16, Items: 16, Queries: 8}, 0)
	require.NoError(t, err)

	assert.Zero(t, rec.AvgRuntimeSec)
	assert.Zero(t, rec.PerQueryMs)
	assert.Empty(t, driver.sequence, "zero repetitions must not touch the driver")
}

func TestEvaluatePointZeroQueries(t *testing.T) {
	driver := &stubDriver{durations: []time.Duration{4 * time.Second}}
	eval := NewEvaluator(driver)

	rec, err := eval.EvaluatePoint(context.Background(), Point{Users: 16, Items: 16, Queries: 0}, 1)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, rec.AvgRuntimeSec, 1e-9)
	assert.Zero(t, rec.PerQueryMs)
}

func TestEvaluatePointPropagatesFailures(t *testing.T) {
	regenFail := &stubDriver{regenErr: assert.AnError}
	_, err := NewEvaluator(regenFail).EvaluatePoint(context.Background(), Point{Users: 1, Items: 1, Queries: 1}, 1)
	assert.ErrorIs(t, err, assert.AnError)

	trialFail := &stubDriver{trialErr: assert.AnError}
	_, err = NewEvaluator(trialFail).EvaluatePoint(context.Background(), Point{Users: 1, Items: 1, Queries: 1}, 1)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRunItemSweepsPreservesOrder(t *testing.T) {
	driver := &stubDriver{}
	eval := NewEvaluator(driver)

	sweeps := []ItemSweep{{Label: "A", FixedUsers: 16, Items: []int{16, 32}}}
	records, err := eval.RunItemSweeps(context.Background(), sweeps, 8, 1)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 16, records[0].Items)
	assert.Equal(t, 32, records[1].Items)
	for _, rec := range records {
		assert.Equal(t, "A", rec.SweepLabel)
		assert.Equal(t, 16, rec.Users)
	}
}

func TestRunItemSweepsKeepsInputValueOrder(t *testing.T) {
	driver := &stubDriver{}
	eval := NewEvaluator(driver)

	// Unsorted on input; the engine must not reorder.
	sweeps := []ItemSweep{{Label: "A", FixedUsers: 8, Items: []int{256, 16, 64}}}
	records, err := eval.RunItemSweeps(context.Background(), sweeps, 4, 1)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []int{256, 16, 64}, []int{records[0].Items, records[1].Items, records[2].Items})
}

func TestRunUserSweepsVariesUsers(t *testing.T) {
	driver := &stubDriver{}
	eval := NewEvaluator(driver)

	sweeps := []UserSweep{
		{Label: "small items (16)", FixedItems: 16, Users: []int{16, 32}},
		{Label: "large items (1024)", FixedItems: 1024, Users: []int{16}},
	}
	records, err := eval.RunUserSweeps(context.Background(), sweeps, 8, 1)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, 16, records[0].Users)
	assert.Equal(t, 32, records[1].Users)
	assert.Equal(t, 16, records[0].Items)
	assert.Equal(t, "small items (16)", records[0].SweepLabel)
	assert.Equal(t, 1024, records[2].Items)
	assert.Equal(t, "large items (1024)", records[2].SweepLabel)
}

func TestSweepAbortsOnFirstFailure(t *testing.T) {
	driver := &stubDriver{trialErr: assert.AnError}
	eval := NewEvaluator(driver)

	sweeps := []ItemSweep{{Label: "A", FixedUsers: 16, Items: []int{16, 32, 64}}}
	records, err := eval.RunItemSweeps(context.Background(), sweeps, 8, 1)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, records)
	// One regeneration and one failed trial, nothing further.
	assert.Equal(t, []string{"regen(16,16,8)", "trial"}, driver.sequence)
}
