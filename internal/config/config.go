// Package config centralizes viper defaults, validation, and sweep-table
// decoding for the benchmark CLI.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"mpcbench/internal/benchmark"
)

// SetDefaults installs the default configuration values.
func SetDefaults() {
	viper.SetDefault("queries", 8)
	viper.SetDefault("repetitions", 2)
	viper.SetDefault("compose_dir", ".")
	viper.SetDefault("results_file", "benchmark_results.json")
	viper.SetDefault("plots_dir", "plots")
	viper.SetDefault("metrics_port", 0)
	viper.SetDefault("log_file", "")
	viper.SetDefault("verbose", false)
}

// Validate rejects configuration values the engine cannot run with.
func Validate() error {
	if q := viper.GetInt("queries"); q < 0 {
		return fmt.Errorf("queries must be non-negative, got %d", q)
	}
	if r := viper.GetInt("repetitions"); r < 0 {
		return fmt.Errorf("repetitions must be non-negative, got %d", r)
	}
	if p := viper.GetInt("metrics_port"); p < 0 || p > 65535 {
		return fmt.Errorf("metrics_port must be in [0, 65535], got %d", p)
	}
	if viper.GetString("results_file") == "" {
		return fmt.Errorf("results_file must not be empty")
	}
	return nil
}

// ItemSweeps returns the item-sweep table from configuration, falling back
// to the built-in tiers. A sweep entry that puts a list where the fixed
// scalar belongs (or vice versa) fails to decode, so an ambiguous dual-list
// definition surfaces as a configuration error instead of a guess.
func ItemSweeps() ([]benchmark.ItemSweep, error) {
	if !viper.IsSet("sweeps.items") {
		return benchmark.DefaultItemSweeps(), nil
	}
	var sweeps []benchmark.ItemSweep
	if err := viper.UnmarshalKey("sweeps.items", &sweeps); err != nil {
		return nil, fmt.Errorf("invalid sweeps.items configuration: %w", err)
	}
	for _, s := range sweeps {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return sweeps, nil
}

// UserSweeps is the user-sweep counterpart of ItemSweeps.
func UserSweeps() ([]benchmark.UserSweep, error) {
	if !viper.IsSet("sweeps.users") {
		return benchmark.DefaultUserSweeps(), nil
	}
	var sweeps []benchmark.UserSweep
	if err := viper.UnmarshalKey("sweeps.users", &sweeps); err != nil {
		return nil, fmt.Errorf("invalid sweeps.users configuration: %w", err)
	}
	for _, s := range sweeps {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return sweeps, nil
}
