package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPlotCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Re-render charts from a previously saved results file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = viper.GetString("results_file")
			}
			store, err := newStoreFunc(file)
			if err != nil {
				return err
			}
			rs, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load results from %s: %w", file, err)
			}
			return renderCharts(newRendererFunc(viper.GetString("plots_dir")), *rs)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Results file to plot (default: configured results_file)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newPlotCmd())
}
