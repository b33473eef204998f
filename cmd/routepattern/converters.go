package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChillFish8/routepattern"
)

func convertersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "converters",
		Short: "List the placeholder types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, c := range routepattern.Converters() {
				pathLike := ""
				if c.PathLike {
					pathLike = " (path-like, must be last)"
				}

				fmt.Fprintf(w, "%-7s %s%s\n", c.Name, c.Pattern, pathLike)
			}
		},
	}
}
