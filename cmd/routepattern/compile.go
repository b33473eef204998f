package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChillFish8/routepattern"
)

func compileCmd() *cobra.Command {
	var options routepattern.Options

	cmd := &cobra.Command{
		Use:   "compile TEMPLATE",
		Short: "Print the regular expression and parameters of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := routepattern.CompileWithOptions(args[0], options)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Template: %s\n", route.Template())
			fmt.Fprintf(w, "Pattern:  %s\n", route.Pattern())
			printParams(w, route.Params())

			return nil
		},
	}

	optionFlags(cmd, &options)

	return cmd
}
