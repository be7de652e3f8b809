package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// summarize renders count, mean, standard deviation and range of values.
func summarize(values []float64) string {
	switch len(values) {
	case 0:
		return "n=0"
	case 1:
		return fmt.Sprintf("n=1 mean=%g", values[0])
	}
	mean, std := stat.MeanStdDev(values, nil)
	return fmt.Sprintf("n=%d mean=%g stddev=%g min=%g max=%g",
		len(values), mean, std, floats.Min(values), floats.Max(values))
}
