// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvgnn/matrix"
)

// ExampleStableSoftmax shows that subtracting the maximum keeps huge scores finite.
func ExampleStableSoftmax() {
	w, _ := matrix.StableSoftmax([]float64{1000, 1000, 1000, 1000})
	fmt.Printf("%.2f\n", w)
	// Output:
	// [0.25 0.25 0.25 0.25]
}

// ExampleBatchedMatMul multiplies two batches independently.
func ExampleBatchedMatMul() {
	id, _ := matrix.NewIdentity(2)
	two, _ := matrix.Scale(id, 2)
	a, _ := matrix.Stack(id, two)
	x, _ := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}})
	b, _ := matrix.Broadcast(x, 2)

	out, _ := matrix.BatchedMatMul(a, b)
	for k := 0; k < out.Batches(); k++ {
		m, _ := out.Batch(k)
		fmt.Println(m.Data())
	}
	// Output:
	// [1 2 3 4]
	// [2 4 6 8]
}
