package plates_test

import (
	"fmt"

	"github.com/matzehuels/barbell/pkg/plates"
)

func ExampleComputeLayout() {
	inv := plates.Inventory{45: 4, 35: 4, 25: 4, 10: 4, 5: 4, 2.5: 4}
	l := plates.ComputeLayout(225, 45, inv)
	fmt.Println(l.OK, l.Summary(), l.Remainder)
	// Output: true 45×2 0
}

func ExampleComputeLayout_infeasible() {
	// 13.5 per side: greedy takes one 10 and has nothing left for 3.5.
	l := plates.ComputeLayout(27, 0, plates.Inventory{10: 2, 5: 0, 2.5: 0})
	fmt.Println(l.OK, l.Summary(), l.Remainder)
	// Output: false 10×1 3.5
}

func ExampleParseInventory() {
	inv, err := plates.ParseInventory("45=2,2.5=1")
	if err != nil {
		panic(err)
	}
	fmt.Println(inv)
	// Output: 45=2,2.5=1
}
