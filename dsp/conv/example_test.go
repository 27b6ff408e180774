package conv_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-periodicity/dsp/conv"
)

func ExampleDominantLag() {
	y := make([]float64, 120)
	for i := range y {
		y[i] = math.Cos(2 * math.Pi * float64(i) / 30)
	}

	acf, err := conv.AutoCorrelate(y)
	if err != nil {
		fmt.Println(err)
		return
	}

	lag, err := conv.DominantLag(acf)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(lag)
	// Output: 30
}
