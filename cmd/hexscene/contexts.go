package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"HexScene/internal/scene"

	"github.com/spf13/cobra"
)

func newContextsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "List the scene table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CONTEXT\tSECTION\tATMOSPHERE\tCAMERA\tMODELS")
			for _, ctx := range registry.Contexts() {
				d, _ := registry.Lookup(ctx)
				models := make([]string, len(d.Models))
				for i, m := range d.Models {
					models[i] = string(m)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t(%g, %g, %g)\t%s\n",
					ctx, ctx.SectionIndex(), d.Atmosphere,
					d.CameraTarget[0], d.CameraTarget[1], d.CameraTarget[2],
					strings.Join(models, ","))
			}
			return tw.Flush()
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the scene table covers every navigation context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			if err := registry.Validate(scene.NavigationContexts()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d contexts, %d navigation contexts covered\n",
				registry.Len(), len(scene.NavigationContexts()))
			return nil
		},
	}
}
