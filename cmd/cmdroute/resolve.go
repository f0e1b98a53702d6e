package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

// resolveOutput is the JSON shape printed for a resolved invocation.
type resolveOutput struct {
	Pattern     string           `json:"pattern"`
	Specificity int              `json:"specificity"`
	Index       int              `json:"index"`
	Values      map[string]any   `json:"values,omitempty"`
	Lists       map[string][]any `json:"lists,omitempty"`
}

func resolveCmd(configPath *string) *cobra.Command {
	var manifestPath string
	var line string
	var explain bool

	cmd := &cobra.Command{
		Use:   "resolve [-- args...]",
		Short: "Resolve an invocation against the manifest's routes",
		Long: `Resolve tokenizes an invocation and matches it against every route in
the manifest, printing the winning route and its bindings as JSON.

Pass the invocation after a -- separator so its options are not
mistaken for cmdroute's own:

  cmdroute resolve -- deploy prod -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			_, set, err := loadRoutes(cfg, manifestPath)
			if err != nil {
				return err
			}

			if line != "" {
				if len(args) > 0 {
					return fmt.Errorf("use either --line or positional arguments, not both")
				}
				args, err = route.SplitLine(line)
				if err != nil {
					return err
				}
			}

			in := route.NewInput(args)

			if explain {
				for i, m := range set.Explain(in) {
					status := "rejected"
					if m.Exact {
						status = "exact"
					} else if m.Viable {
						status = "viable"
					}
					detail := ""
					if m.Reason != "" {
						detail = " (" + m.Reason + ")"
					}
					info("%3d %-40s %s%s", i, m.Route.Pattern(), status, detail)
				}
			}

			res, ok := set.Resolve(in)
			if !ok {
				errorMsg("no route matched")
				os.Exit(2)
			}

			out := resolveOutput{
				Pattern:     res.Route.Pattern(),
				Specificity: res.Route.Specificity(),
				Index:       res.Index,
				Values:      res.Values,
				Lists:       res.Lists,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Route manifest path (overrides config)")
	cmd.Flags().StringVarP(&line, "line", "l", "", "Resolve a single command line instead of argv tokens")
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Show the per-route outcome before the winner")

	return cmd
}
