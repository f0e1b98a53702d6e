package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

func explainCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <pattern>",
		Short: "Show the segments and specificity of one pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			var opts []route.CompileOption
			if cfg.CaseInsensitive {
				opts = append(opts, route.WithCaseInsensitiveLiterals())
			}

			compiled, err := route.Compile(args[0], opts...)
			if err != nil {
				var perr *route.PatternError
				if errors.As(err, &perr) {
					errorMsg("%s", route.FormatError(perr))
					return fmt.Errorf("pattern does not compile")
				}
				return err
			}

			success("pattern compiles")
			info("canonical: %s", compiled.String())
			for _, seg := range compiled.Segments() {
				info("%-12s %-30s weight %d", seg.Kind, seg, seg.Weight())
			}
			info("%-12s %-30s total  %d", "", "", compiled.Specificity())
			return nil
		},
	}

	return cmd
}
