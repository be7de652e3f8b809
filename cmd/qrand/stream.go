package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	qrng "github.com/albertnieto/quantis-qrng-go"
)

func (a *cli) streamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "stream",
		Short:       "Write raw random bytes to a file or stdout",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{sessionAnnotation: "progress"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.streamSize == 0 || a.streamSize > uint64(^uint(0)>>1) {
				return fmt.Errorf("invalid --size %d", a.streamSize)
			}

			var out io.Writer = cmd.OutOrStdout()
			if a.streamOutput != "" && a.streamOutput != "-" {
				f, err := os.Create(a.streamOutput)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if err := a.client.StreamRandomBytes(cmd.Context(), out, int(a.streamSize)); err != nil {
				return err
			}
			a.logger.Info().Str("size", humanize.IBytes(a.streamSize)).Str("output", a.streamOutput).Msg("stream complete")
			return nil
		},
	}
	cmd.Flags().Uint64Var(&a.streamSize, "size", 1024, "number of bytes to request")
	cmd.Flags().StringVarP(&a.streamOutput, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&a.streamQuiet, "quiet", "q", false, "do not print progress")
	return cmd
}

// newProgressPrinter reports transfer progress at most a few times per second.
func newProgressPrinter(w io.Writer) qrng.ProgressFunc {
	var last time.Time
	return func(kind qrng.RequestKind, received, total int64) {
		done := total > 0 && received >= total
		if !done && time.Since(last) < 250*time.Millisecond {
			return
		}
		last = time.Now()
		if total > 0 {
			fmt.Fprintf(w, "\r%s: %s / %s", kind, humanize.IBytes(uint64(received)), humanize.IBytes(uint64(total)))
		} else {
			fmt.Fprintf(w, "\r%s: %s", kind, humanize.IBytes(uint64(received)))
		}
		if done {
			fmt.Fprintln(w)
		}
	}
}
