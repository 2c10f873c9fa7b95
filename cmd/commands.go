package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/clipbar/pkg/settings"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print " + settings.CliBinaryName + " version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return err
		},
	}
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func newConfigCmd(configFile *string) *cobra.Command {
	var output string
	c := &cobra.Command{
		Use:   "config",
		Short: "Show the merged configuration",
		Long: `Print the embedded default configuration merged with the user config file.
The user file is --config-file, or $XDG_CONFIG_HOME/clipbar/config.yaml when it
exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, source, err := loadMergedConfig(*configFile)
			if err != nil {
				return err
			}
			text, err := renderConfig(cfg, source, output)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml|json")
	return c
}

func newThemesCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadMergedConfig(*configFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range cfg.ThemeNames() {
				marker := "  "
				if name == cfg.UI.Theme.Default {
					marker = "* "
				}
				if _, err := fmt.Fprintln(out, marker+name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
