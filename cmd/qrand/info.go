package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *cli) infoCommands() []*cobra.Command {
	newInfoCmd := func(use, short string, fetch func(ctx context.Context, w io.Writer) error) *cobra.Command {
		return &cobra.Command{
			Use:         use,
			Short:       short,
			Args:        cobra.NoArgs,
			Annotations: map[string]string{sessionAnnotation: "info"},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := fetch(cmd.Context(), cmd.OutOrStdout()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			},
		}
	}

	return []*cobra.Command{
		newInfoCmd("fwinfo", "Print the appliance firmware information", func(ctx context.Context, w io.Writer) error {
			return a.client.FirmwareInfo(ctx, w)
		}),
		newInfoCmd("sysinfo", "Print the appliance system information", func(ctx context.Context, w io.Writer) error {
			return a.client.SystemInfo(ctx, w)
		}),
	}
}
