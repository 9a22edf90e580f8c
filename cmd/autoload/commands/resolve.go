package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/autoload/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [types...]",
		Short: "Declare types with their supertypes and interfaces",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Resolve(cmd.Context(), args)
		},
	}
}

func (c *CLI) newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <type>",
		Short: "Declare a type and print what the runtime knows about it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatReport(report))
			return err
		},
	}
}

func formatReport(r *app.TypeReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.Kind, r.Name)
	field := func(label string, values []string, sep string) {
		if len(values) > 0 {
			fmt.Fprintf(&b, "  %-11s %s\n", label+":", strings.Join(values, sep))
		}
	}
	switch {
	case r.Builtin:
		field("file", []string{"(builtin)"}, "")
	case r.File != "":
		field("file", []string{r.File}, "")
	}
	field("extends", r.Supertypes, ", ")
	field("ancestry", r.Ancestry, " -> ")
	field("implements", r.Interfaces, ", ")
	field("interfaces", r.AllInterfaces, ", ")
	field("methods", r.Methods, ", ")
	return b.String()
}

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <type>",
		Short: "Print the file defining a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, content, err := c.app.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if pathOnly, _ := cmd.Flags().GetBool("path"); pathOnly {
				_, err = fmt.Fprintln(out, file)
				return err
			}
			_, err = out.Write(content)
			return err
		},
	}
	cmd.Flags().BoolP("path", "p", false, "Print only the path of the defining file")
	return cmd
}
