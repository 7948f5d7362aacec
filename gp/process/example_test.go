package process_test

import (
	"fmt"
	"log"

	"github.com/cwbudde/algo-gp/gp/noise"
	"github.com/cwbudde/algo-gp/gp/process"
	"github.com/cwbudde/algo-gp/gp/quasisep"
)

func ExampleGaussianProcess_LogProbability() {
	kernel, err := quasisep.NewExp(1, 1)
	if err != nil {
		log.Fatal(err)
	}

	gp, err := process.New(kernel, []float64{0})
	if err != nil {
		log.Fatal(err)
	}

	lp, err := gp.LogProbability([]float64{1})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%.4f\n", lp)
	// Output:
	// -1.4189
}

func ExampleGaussianProcess_Predict() {
	kernel, err := quasisep.NewMatern32(1.5, 1)
	if err != nil {
		log.Fatal(err)
	}

	iid, err := noise.NewIID(1e-10)
	if err != nil {
		log.Fatal(err)
	}

	xs := []float64{0, 1, 2}
	ys := []float64{1, 2, 1}

	gp, err := process.New(kernel, xs, process.WithNoise(iid))
	if err != nil {
		log.Fatal(err)
	}

	// Conditioning on noiseless data reproduces it at the inputs.
	mean, _, err := gp.Predict(ys, xs)
	if err != nil {
		log.Fatal(err)
	}

	for _, m := range mean {
		fmt.Printf("%.2f\n", m)
	}
	// Output:
	// 1.00
	// 2.00
	// 1.00
}
