package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mpcbench/internal/benchmark"
	"mpcbench/internal/compose"
	"mpcbench/internal/config"
	"mpcbench/internal/docker"
	"mpcbench/internal/plotting"
	"mpcbench/internal/runner"
)

const (
	itemsChartName  = "time_vs_items.png"
	usersChartName  = "time_vs_users.png"
	itemsChartTitle = "Item profile update latency"
	usersChartTitle = "User profile update latency"
	itemsXLabel     = "Number of items"
	usersXLabel     = "Number of users"
)

// workloadDriver is what the run command needs from the compose layer.
type workloadDriver interface {
	benchmark.WorkloadDriver
	Down(ctx context.Context)
}

// chartRenderer matches plotting.Renderer, mockable in tests.
type chartRenderer interface {
	Render(records []benchmark.Record, axis plotting.Axis, xLabel, title, outName string) error
}

// Constructor variables allow mocking in tests.
var (
	newDriverFunc = func(dir string, dryRun bool) workloadDriver {
		return compose.NewDriver(runner.New(dir, dryRun))
	}
	newStoreFunc = func(path string) (benchmark.Store, error) {
		return benchmark.NewFileStore(path)
	}
	newRendererFunc = func(dir string) chartRenderer {
		return plotting.NewRenderer(dir)
	}
	checkDockerFunc = func(ctx context.Context) error {
		cli, err := docker.NewClient()
		if err != nil {
			return err
		}
		defer cli.Close()
		return cli.CheckDaemon(ctx)
	}
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full benchmark sweep and emit results and charts",
		Long: `Runs both sweep passes (varying items across fixed user tiers, then
varying users across fixed item tiers), repeating each parameter point and
averaging the trial durations. Results are written once at the end; a failed
trial aborts the whole run without persisting anything.`,
		RunE: runBenchmark,
	}

	cmd.Flags().Int("queries", 8, "Number of queries per run")
	cmd.Flags().Int("repetitions", 2, "How many times to repeat each parameter point")
	cmd.Flags().Bool("skip-plots", false, "Collect data but skip chart rendering")
	cmd.Flags().Bool("dry-run", false, "Only print docker commands without executing them")

	viper.BindPFlag("queries", cmd.Flags().Lookup("queries"))
	viper.BindPFlag("repetitions", cmd.Flags().Lookup("repetitions"))
	viper.BindPFlag("skip_plots", cmd.Flags().Lookup("skip-plots"))
	viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	queries := viper.GetInt("queries")
	repetitions := viper.GetInt("repetitions")
	dryRun := viper.GetBool("dry_run")

	itemSweeps, err := config.ItemSweeps()
	if err != nil {
		return err
	}
	userSweeps, err := config.UserSweeps()
	if err != nil {
		return err
	}

	if !dryRun {
		if err := checkDockerFunc(ctx); err != nil {
			return err
		}
	}

	driver := newDriverFunc(viper.GetString("compose_dir"), dryRun)
	eval := benchmark.NewEvaluator(driver)

	// Clear out any leftover stack before measuring.
	driver.Down(ctx)

	itemRecords, userRecords, err := runSweeps(ctx, eval, driver, itemSweeps, userSweeps, queries, repetitions)
	if err != nil {
		return err
	}

	store, err := newStoreFunc(viper.GetString("results_file"))
	if err != nil {
		return err
	}
	rs := benchmark.ResultSet{
		Metadata: benchmark.Metadata{
			QueriesPerRun: queries,
			Repetitions:   repetitions,
			DryRun:        dryRun,
		},
		VaryItems: itemRecords,
		VaryUsers: userRecords,
	}
	if err := store.Save(rs); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", viper.GetString("results_file"))

	if viper.GetBool("skip_plots") {
		return nil
	}
	return renderCharts(newRendererFunc(viper.GetString("plots_dir")), rs)
}

// runSweeps executes both passes with the teardown bracketed around them, so
// the stack comes down whether or not the sweeps completed. Results are only
// persisted by the caller after a fully successful pass.
func runSweeps(ctx context.Context, eval *benchmark.Evaluator, driver workloadDriver,
	itemSweeps []benchmark.ItemSweep, userSweeps []benchmark.UserSweep,
	queries, repetitions int) (itemRecords, userRecords []benchmark.Record, err error) {

	defer driver.Down(ctx)

	itemRecords, err = eval.RunItemSweeps(ctx, itemSweeps, queries, repetitions)
	if err != nil {
		return nil, nil, err
	}
	userRecords, err = eval.RunUserSweeps(ctx, userSweeps, queries, repetitions)
	if err != nil {
		return nil, nil, err
	}
	return itemRecords, userRecords, nil
}

func renderCharts(renderer chartRenderer, rs benchmark.ResultSet) error {
	if err := renderer.Render(rs.VaryItems, plotting.AxisItems, itemsXLabel, itemsChartTitle, itemsChartName); err != nil {
		return err
	}
	return renderer.Render(rs.VaryUsers, plotting.AxisUsers, usersXLabel, usersChartTitle, usersChartName)
}
