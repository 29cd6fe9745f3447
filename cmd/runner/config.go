package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a new run would use, as YAML.

The file is found in this order: --config, ~/.arcade/configs/runner.yaml,
./configs/runner.yaml, then the built-in defaults. The --difficulty
preset is applied on top. With --defaults the built-in file is printed
unchanged, which is a good starting point for a custom config.

Examples:
  runner config
  runner config --difficulty hard
  runner config --defaults > ~/.arcade/configs/runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, src, err := config.LoadRunner(flagConfig, logger)
	if err != nil {
		return fmt.Errorf("config %s: %w", flagConfig, err)
	}
	preset := difficulty()
	cfg = config.ApplyPreset(cfg, preset)

	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n# difficulty: %s\n", src, preset)
	_, err = os.Stdout.Write(out)
	return err
}
