package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

func checkCmd(configPath *string) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compile every pattern in the manifest and report errors",
		Long: `Check compiles every route pattern in the manifest and reports all
compilation errors at once, with the offending offset marked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			m, set, err := loadRoutes(cfg, manifestPath)
			if err != nil {
				var merr *route.MultiError
				if errors.As(err, &merr) {
					for _, perr := range merr.Errors {
						errorMsg("%s", route.FormatError(perr))
					}
					return fmt.Errorf("%d of %d patterns failed to compile", len(merr.Errors), len(m.Routes))
				}
				return err
			}

			success("%d routes compiled", set.Len())
			for _, r := range set.Routes() {
				info("%-40s specificity %d", r.String(), r.Specificity())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Route manifest path (overrides config)")

	return cmd
}
