package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nodebot-tools/setupcheck/configs"
	"github.com/nodebot-tools/setupcheck/internal/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect project configuration",
		Long: `Inspect the configuration setupcheck uses for a project.

Configuration precedence (lowest to highest):
  1. Built-in defaults
  2. Project config (.setupcheck.yaml or .setupcheck.yml)
  3. Environment variables (SETUPCHECK_*)
  4. Command line flags`,
		Example: `  # Print a documented example config
  setupcheck config example > .setupcheck.yaml

  # Show the effective configuration
  setupcheck config show

  # Print the project config file path
  setupcheck config path`,
	}

	cmd.AddCommand(newConfigExampleCmd())
	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigPathCmd(flags))

	return cmd
}

func newConfigExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example .setupcheck.yaml with every default",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), configs.ProjectConfigTemplate)
			return err
		},
	}
}

func newConfigShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration as YAML",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.prepare(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(s.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the project config file path",
		Long:  `Print the project config file in use. Prints nothing and exits 0 when the project has none.`,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveRoot(flags.root)
			if err != nil {
				return err
			}
			if path := config.ProjectConfigPath(root); path != "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}
}
