// Command gpinfo prints state-space properties of Gaussian process kernels.
//
// Usage:
//
//	gpinfo [flags] [kernel-name ...]
//
// Without arguments it prints info for all known kernel types.
//
// Examples:
//
//	gpinfo exp matern32
//	gpinfo -scale 2.5 -sigma 0.8 exp
//	gpinfo -omega 3 -q 10 sho
//	gpinfo -alpha 1,1.2 -beta 1,3 carma
//	gpinfo -all
//	gpinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-gp/gp/quasisep"
	"github.com/cwbudde/algo-gp/stats/spectral"
)

type kernelParams struct {
	scale float64
	sigma float64
	omega float64
	q     float64
	a     float64
	b     float64
	c     float64
	d     float64
	alpha []float64
	beta  []float64
}

type kernelEntry struct {
	name  string
	build func(p kernelParams) (quasisep.Kernel, error)
	label func(p kernelParams) string
}

func scaled(name string) kernelEntry {
	return kernelEntry{
		name: name,
		label: func(p kernelParams) string {
			return fmt.Sprintf("%s (scale=%.3g, sigma=%.3g)", name, p.scale, p.sigma)
		},
	}
}

func registry() []kernelEntry {
	exp := scaled("exp")
	exp.build = func(p kernelParams) (quasisep.Kernel, error) { return quasisep.NewExp(p.scale, p.sigma) }

	m32 := scaled("matern32")
	m32.build = func(p kernelParams) (quasisep.Kernel, error) { return quasisep.NewMatern32(p.scale, p.sigma) }

	m52 := scaled("matern52")
	m52.build = func(p kernelParams) (quasisep.Kernel, error) { return quasisep.NewMatern52(p.scale, p.sigma) }

	cosine := scaled("cosine")
	cosine.build = func(p kernelParams) (quasisep.Kernel, error) { return quasisep.NewCosine(p.scale, p.sigma) }

	sho := kernelEntry{
		name: "sho",
		build: func(p kernelParams) (quasisep.Kernel, error) {
			return quasisep.NewSHO(p.omega, p.q, p.sigma)
		},
		label: func(p kernelParams) string {
			return fmt.Sprintf("sho (omega=%.3g, Q=%.3g, sigma=%.3g)", p.omega, p.q, p.sigma)
		},
	}

	celerite := kernelEntry{
		name: "celerite",
		build: func(p kernelParams) (quasisep.Kernel, error) {
			return quasisep.NewCelerite(p.a, p.b, p.c, p.d)
		},
		label: func(p kernelParams) string {
			return fmt.Sprintf("celerite (a=%.3g, b=%.3g, c=%.3g, d=%.3g)", p.a, p.b, p.c, p.d)
		},
	}

	carma := kernelEntry{
		name: "carma",
		build: func(p kernelParams) (quasisep.Kernel, error) {
			return quasisep.NewCARMA(p.alpha, p.beta)
		},
		label: func(p kernelParams) string {
			return fmt.Sprintf("carma (p=%d, q=%d)", len(p.alpha), len(p.beta)-1)
		},
	}

	return []kernelEntry{exp, m32, m52, cosine, sho, celerite, carma}
}

func main() {
	scale := flag.Float64("scale", 1, "length scale for exp, matern32, matern52; period for cosine")
	sigma := flag.Float64("sigma", 1, "standard deviation of the process")
	omega := flag.Float64("omega", 1, "undamped angular frequency for sho")
	q := flag.Float64("q", 2, "quality factor for sho")
	a := flag.Float64("a", 1, "celerite cosine amplitude")
	b := flag.Float64("b", 0.1, "celerite sine amplitude")
	c := flag.Float64("c", 0.5, "celerite decay rate")
	d := flag.Float64("d", 1, "celerite angular frequency")
	alphaFlag := flag.String("alpha", "1,1.2", "carma autoregressive coefficients, comma separated")
	betaFlag := flag.String("beta", "1,3", "carma moving-average coefficients, comma separated")
	lags := flag.Int("lags", 2048, "autocovariance lags for the numerical density")
	dt := flag.Float64("dt", 0.05, "lag spacing for the numerical density")
	all := flag.Bool("all", false, "show all kernel types")
	list := flag.Bool("list", false, "list available kernel names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gpinfo [flags] [kernel-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints state-space properties of Gaussian process kernels.\n")
		fmt.Fprintf(os.Stderr, "Without arguments or with -all, prints info for all kernels.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gpinfo exp matern32\n")
		fmt.Fprintf(os.Stderr, "  gpinfo -omega 3 -q 10 sho\n")
		fmt.Fprintf(os.Stderr, "  gpinfo -alpha 1,1.2 -beta 1,3 carma\n")
		fmt.Fprintf(os.Stderr, "  gpinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	params := kernelParams{
		scale: *scale,
		sigma: *sigma,
		omega: *omega,
		q:     *q,
		a:     *a,
		b:     *b,
		c:     *c,
		d:     *d,
	}

	var err error

	params.alpha, err = parseCoeffs(*alphaFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -alpha: %v\n", err)
		os.Exit(1)
	}

	params.beta, err = parseCoeffs(*betaFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -beta: %v\n", err)
		os.Exit(1)
	}

	names := flag.Args()
	if len(names) == 0 || *all {
		names = nil
		for _, e := range registry() {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching kernel types\n")
		os.Exit(1)
	}

	printInfo(entries, params, *lags, *dt)
}

func printList() {
	names := make([]string, 0, len(registry()))
	for _, e := range registry() {
		names = append(names, e.name)
	}

	sort.Strings(names)

	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveEntries(names []string) []kernelEntry {
	byName := make(map[string]kernelEntry)
	for _, e := range registry() {
		byName[e.name] = e
	}

	var result []kernelEntry

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))

		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown kernel %q (use -list to see available)\n", name)
			continue
		}

		result = append(result, e)
	}

	return result
}

func parseCoeffs(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))

	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad coefficient %q", part)
		}

		out = append(out, v)
	}

	return out, nil
}

func printInfo(entries []kernelEntry, params kernelParams, lags int, dt float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Kernel\tState Dim\tVariance\tCorr Time\tPeak Freq\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	if _, err := fmt.Fprintf(tw, "------\t---------\t--------\t---------\t---------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	var carmas []*quasisep.CARMA

	for _, e := range entries {
		k, err := e.build(params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", e.name, err)
			continue
		}

		s, err := spectral.KernelSpectrum(k, lags, dt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", e.name, err)
			continue
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\n",
			e.label(params),
			k.StateDim(),
			k.Eval(0, 0),
			correlationTime(k, lags, dt),
			spectral.PeakFrequency(s),
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}

		if cm, ok := k.(*quasisep.CARMA); ok {
			carmas = append(carmas, cm)
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return
	}

	for _, cm := range carmas {
		printRoots(cm)
	}
}

// correlationTime integrates the normalized autocovariance by the trapezoid
// rule over the sampled lag range.
func correlationTime(k quasisep.Kernel, lags int, dt float64) float64 {
	k0 := k.Eval(0, 0)
	if k0 == 0 {
		return 0
	}

	sum := k0 / 2
	for j := 1; j < lags; j++ {
		sum += k.Eval(0, float64(j)*dt)
	}

	return dt * sum / k0
}

func printRoots(cm *quasisep.CARMA) {
	fmt.Printf("\ncarma alpha=%v beta=%v\n", cm.Alpha(), cm.Beta())

	for _, r := range cm.ARRoots() {
		fmt.Printf("  AR root %+.4f%+.4fi\n", real(r), imag(r))
	}
}
