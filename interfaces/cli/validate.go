package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/launchpad/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate a launchpad configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Storage driver and its required connection settings
  - Dispatch timeouts and retry bounds
  - Environment variable references (in strict mode)

Examples:
  # Validate a configuration file
  launchpad validate -c config.yaml

  # Strict validation (fail on missing env vars)
  launchpad validate -c config.yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("config file path is required (use -c)")
	}

	loader := config.NewLoader()
	loader.StrictEnv = opts.strict

	cfg, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "Configuration is valid\n")
	if cfg.Name != "" {
		fmt.Fprintf(a.stdout, "  Name: %s\n", cfg.Name)
	}
	driver := cfg.Storage.Driver
	if driver == "" {
		driver = "memory"
	}
	fmt.Fprintf(a.stdout, "  Storage: %s\n", driver)
	return nil
}
