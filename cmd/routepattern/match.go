package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChillFish8/routepattern"
)

func matchCmd() *cobra.Command {
	var (
		options routepattern.Options
		urls    bool
	)

	cmd := &cobra.Command{
		Use:   "match TEMPLATE PATH...",
		Short: "Match paths against a template and print the captured values",
		Long: `Match every PATH against TEMPLATE. For each match the raw and decoded value
of every placeholder is printed. The command fails if any path does not match.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := routepattern.CompileWithOptions(args[0], options)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			misses := 0

			for _, input := range args[1:] {
				var result *routepattern.Result
				if urls {
					result, err = route.ExecURL(input)
					if err != nil {
						return err
					}
				} else {
					result = route.Exec(input)
				}

				if result == nil {
					misses++
					fmt.Fprintf(w, "%s: no match\n", input)

					continue
				}

				fmt.Fprintf(w, "%s: match\n", input)
				for _, v := range result.Values {
					decoded, err := v.Decode()
					if err != nil {
						return err
					}

					fmt.Fprintf(w, "  %s = %q (%T)\n", v.Param.Name, v.Raw, decoded)
				}
			}

			if misses > 0 {
				return fmt.Errorf("%d of %d paths did not match %s", misses, len(args)-1, route.Template())
			}

			return nil
		},
	}

	optionFlags(cmd, &options)
	cmd.Flags().BoolVar(&urls, "url", false, "Treat arguments as absolute URLs and match their pathname")

	return cmd
}
