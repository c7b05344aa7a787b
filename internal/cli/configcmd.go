package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtouch/internal/configloader"
)

func newConfigCommand(a *app) *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, config files,
MDTOUCH_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if showEnv {
				descriptions := configloader.ListEnvVars()
				for _, name := range configloader.EnvVarNames() {
					_, _ = fmt.Fprintf(out, "%-30s %s\n", name, descriptions[name])
				}
				return nil
			}

			data, err := a.cfg.ToYAML()
			if err != nil {
				return err
			}
			for _, path := range a.loaded {
				_, _ = fmt.Fprintf(out, "# from %s\n", path)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "list the supported environment variables")

	return cmd
}
