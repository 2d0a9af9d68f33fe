// Package compose drives the MPC workload through the docker compose CLI:
// regenerating shares/queries for a parameter point, running the protocol
// parties as one timed foreground unit, and tearing the stack down.
package compose

import (
	"context"
	"strconv"
	"time"

	"mpcbench/internal/runner"
	"mpcbench/internal/telemetry"
)

// Driver issues the compose commands for one benchmark environment.
type Driver struct {
	Runner runner.Runner

	// Parties lists the protocol services in startup order. Their collective
	// exit (--abort-on-container-exit) marks the end of a timed trial.
	Parties []string

	// GenService and GenCommand describe the data-generation one-shot.
	GenService string
	GenCommand string

	// now is the trial clock, injectable in tests.
	now func() time.Time
}

func NewDriver(r runner.Runner) *Driver {
	return &Driver{
		Runner:     r,
		Parties:    []string{"p2", "p1", "p0"},
		GenService: "gen",
		GenCommand: "./gen_queries",
		now:        time.Now,
	}
}

func (d *Driver) compose(args ...string) []string {
	return append([]string{"docker", "compose"}, args...)
}

// Down tears down the compose stack. Best-effort: a failure is logged by the
// runner and never escalated, so bracketing a run with Down cannot mask a
// measurement error.
func (d *Driver) Down(ctx context.Context) {
	_ = d.Runner.Run(ctx, false, d.compose("down")...)
}

// RegenerateInputs rebuilds the on-disk shares and query files for the given
// parameter point. The next trial consumes exactly this state, so trials must
// stay strictly sequential.
func (d *Driver) RegenerateInputs(ctx context.Context, users, items, queries int) error {
	args := d.compose("run", "--rm", d.GenService, d.GenCommand,
		strconv.Itoa(users), strconv.Itoa(items), strconv.Itoa(queries))
	return d.Runner.Run(ctx, true, args...)
}

// RunTrial executes one timed run of the protocol parties. The clock wraps
// only the foreground compose invocation; the container cleanup afterwards is
// best-effort and runs whether or not the timed command failed. In preview
// mode the returned duration is exactly zero so dry runs stay deterministic.
func (d *Driver) RunTrial(ctx context.Context) (time.Duration, error) {
	up := d.compose("up", "--force-recreate", "--abort-on-container-exit")
	up = append(up, d.Parties...)

	start := d.now()
	err := d.Runner.Run(ctx, true, up...)
	duration := d.now().Sub(start)

	rm := d.compose("rm", "-f")
	for i := len(d.Parties) - 1; i >= 0; i-- {
		rm = append(rm, d.Parties[i])
	}
	_ = d.Runner.Run(ctx, false, rm...)

	if err != nil {
		telemetry.RecordTrial(0, err)
		return 0, err
	}
	if d.Runner.Preview() {
		return 0, nil
	}
	telemetry.RecordTrial(duration.Seconds(), nil)
	return duration, nil
}
