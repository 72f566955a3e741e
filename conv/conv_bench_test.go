package conv

import (
	"fmt"
	"math"
	"testing"
)

func BenchmarkCorrelate1D(b *testing.B) {
	input := make([]float64, 4096)
	for i := range input {
		input[i] = math.Sin(float64(i) / 13)
	}

	for _, size := range []int{3, 16, 63, 64, 256} {
		weights := make([]float64, size)
		for i := range weights {
			weights[i] = 1 / float64(size)
		}

		b.Run(fmt.Sprintf("kernel=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				if _, err := Correlate1D(input, weights, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
