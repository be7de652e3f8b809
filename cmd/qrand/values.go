package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	qrng "github.com/albertnieto/quantis-qrng-go"
)

// fetchFunc requests values and renders them as printable tokens plus a
// float64 view for statistics.
type fetchFunc func(ctx context.Context, c *qrng.Client) ([]string, []float64, error)

func (a *cli) newValuesCmd(use, short string, fetch fetchFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{sessionAnnotation: "values"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, values, err := fetch(cmd.Context(), a.client)
			if err != nil {
				return err
			}
			return printValues(cmd.OutOrStdout(), tokens, values, a.stats)
		},
	}
	cmd.Flags().IntVarP(&a.samples, "samples", "s", 1, "number of samples")
	cmd.Flags().BoolVar(&a.stats, "stats", false, "print a summary after the values")
	return cmd
}

func (a *cli) intFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Int64VarP(&a.minInt, "min", "i", 0, "min integer value")
	cmd.Flags().Int64VarP(&a.maxInt, "max", "I", 100, "max integer value")
	return cmd
}

func (a *cli) floatFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Float64VarP(&a.minFloat, "min", "m", 0, "min floating point value")
	cmd.Flags().Float64VarP(&a.maxFloat, "max", "M", 1, "max floating point value")
	return cmd
}

func render[T any](vals []T, format func(T) string, toFloat func(T) float64) ([]string, []float64) {
	tokens := make([]string, len(vals))
	floats := make([]float64, len(vals))
	for i, x := range vals {
		tokens[i] = format(x)
		floats[i] = toFloat(x)
	}
	return tokens, floats
}

// checkInt reports whether [min, max] fits in a signed integer of bits width.
func checkInt(min, max int64, bits int) error {
	lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
	if min < lo || max > hi {
		return fmt.Errorf("range [%d, %d] does not fit in int%d", min, max, bits)
	}
	return nil
}

func (a *cli) valueCommands() []*cobra.Command {
	bytesCmd := a.newValuesCmd("bytes", "Random bytes (hex)", func(ctx context.Context, c *qrng.Client) ([]string, []float64, error) {
		vals, err := c.GetRandomBytes(ctx, a.samples)
		if err != nil {
			return nil, nil, err
		}
		t, f := render(vals, func(b byte) string { return strconv.FormatUint(uint64(b), 16) }, func(b byte) float64 { return float64(b) })
		return t, f, nil
	})

	int16Cmd := a.intFlags(a.newValuesCmd("int16", "Random 16-bit integers in [min, max]", func(ctx context.Context, c *qrng.Client) ([]string, []float64, error) {
		if err := checkInt(a.minInt, a.maxInt, 16); err != nil {
			return nil, nil, err
		}
		vals, err := c.GetRandomInt16(ctx, int16(a.minInt), int16(a.maxInt), a.samples)
		if err != nil {
			return nil, nil, err
		}
		t, f := render(vals, func(x int16) string { return strconv.FormatInt(int64(x), 10) }, func(x int16) float64 { return float64(x) })
		return t, f, nil
	}))

	int32Cmd := a.intFlags(a.newValuesCmd("int32", "Random 32-bit integers in [min, max]", func(ctx context.Context, c *qrng.Client) ([]string, []float64, error) {
		if err := checkInt(a.minInt, a.maxInt, 32); err != nil {
			return nil, nil, err
		}
		vals, err := c.GetRandomInt32(ctx, int32(a.minInt), int32(a.maxInt), a.samples)
		if err != nil {
			return nil, nil, err
		}
		t, f := render(vals, func(x int32) string { return strconv.FormatInt(int64(x), 10) }, func(x int32) float64 { return float64(x) })
		return t, f, nil
	}))

	int64Cmd := a.intFlags(a.newValuesCmd("int64", "Random 64-bit integers in [min, max]", func(ctx context.Context, c *qrng.Client) ([]string, []float64, error) {
		vals, err := c.GetRandomInt64(ctx, a.minInt, a.maxInt, a.samples)
		if err != nil {
			return nil, nil, err
		}
		t, f := render(vals, func(x int64) string { return strconv.FormatInt(x, 10) }, func(x int64) float64 { return float64(x) })
		return t, f, nil
	}))

	floatCmd := a.floatFlags(a.newValuesCmd("float", "Random float32 values in [min, max)", func(ctx context.Context, c *qrng.Client) ([]string, []float64, error) {
		vals, err := c.GetRandomFloat32(ctx, float32(a.minFloat), float32(a.maxFloat), a.samples)
		if err != nil {
			return nil, nil, err
		}
		t, f := render(vals, func(x float32) string { return strconv.FormatFloat(float64(x), 'f', 6, 32) }, func(x float32) float64 { return float64(x) })
		return t, f, nil
	}))

	doubleCmd := a.floatFlags(a.newValuesCmd("double", "Random float64 values in [min, max)", func(ctx context.Context, c *qrng.Client) ([]string, []float64, error) {
		vals, err := c.GetRandomFloat64(ctx, a.minFloat, a.maxFloat, a.samples)
		if err != nil {
			return nil, nil, err
		}
		t, f := render(vals, func(x float64) string { return strconv.FormatFloat(x, 'f', 6, 64) }, func(x float64) float64 { return x })
		return t, f, nil
	}))

	return []*cobra.Command{bytesCmd, int16Cmd, int32Cmd, int64Cmd, floatCmd, doubleCmd}
}

func printValues(w io.Writer, tokens []string, values []float64, stats bool) error {
	if _, err := fmt.Fprintln(w, strings.Join(tokens, " ")); err != nil {
		return err
	}
	if stats {
		_, err := fmt.Fprintln(w, summarize(values))
		return err
	}
	return nil
}
