package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avkarpov/planarcut/internal/model"
)

const version = "1.2.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "planarcut",
	Short: "Guillotine cutting plan optimizer for planar materials",
	Long: `planarcut - cutting plan optimizer for window mesh and sheet stock

Computes guillotine cutting layouts that consume warehouse remainders
before fresh sheets and reports reusable offcuts back to stock.`,
	Version: version,
	Run:     nil,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.planarcut.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(importCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".planarcut.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("PLANARCUT")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// newLogger builds the CLI logger. Verbose mode lowers the level to
// debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// paramsFromConfig starts from defaults and applies any overrides found
// in the config file or environment.
func paramsFromConfig() model.Params {
	params := model.DefaultParams()

	if viper.IsSet("min_waste_side") {
		params.MinWasteSide = viper.GetFloat64("min_waste_side")
	}
	if viper.IsSet("min_remainder_width") {
		params.PlanarMinRemainderWidth = viper.GetFloat64("min_remainder_width")
	}
	if viper.IsSet("min_remainder_height") {
		params.PlanarMinRemainderHeight = viper.GetFloat64("min_remainder_height")
	}
	if viper.IsSet("remainder_indent") {
		params.RemainderIndent = viper.GetFloat64("remainder_indent")
	}
	if viper.IsSet("cutting_width") {
		params.CuttingWidth = viper.GetFloat64("cutting_width")
	}
	if viper.IsSet("max_iterations_per_sheet") {
		params.MaxIterationsPerSheet = viper.GetInt("max_iterations_per_sheet")
	}
	if viper.IsSet("rotation_mode") {
		if mode, err := model.ParseRotationMode(viper.GetString("rotation_mode")); err == nil {
			params.RotationMode = mode
		}
	}

	return params
}
