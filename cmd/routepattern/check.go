package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ChillFish8/routepattern/routeset"
)

func checkCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var paths []string

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Compile every route of a route file",
		Long: `Load a YAML route file, compile all of its routes and report the invalid ones.
Each --path is then dispatched to the first matching route.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := routeset.Load(args[0])
			if err != nil {
				return err
			}

			set, err := routeset.New(cfg, logger(cmd))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d routes OK", set.Len())
			if skipped := set.Skipped(); len(skipped) > 0 {
				fmt.Fprintf(w, ", %d skipped", len(skipped))
			}
			fmt.Fprintln(w)

			for _, p := range paths {
				m, ok := set.Match(p)
				if !ok {
					fmt.Fprintf(w, "%s: no route\n", p)
					continue
				}

				fmt.Fprintf(w, "%s: %s %v\n", p, m.Name, m.Result.Groups)
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&paths, "path", nil, "Request path to dispatch (repeatable)")

	return cmd
}
