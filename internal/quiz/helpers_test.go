package quiz_test

import (
	"math/rand"

	"element-quiz/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

// testPool has at least four distinct values for every kind.
func testPool() []domain.Element {
	return []domain.Element{
		{
			Name: "Hydrogen", LatinName: "Hydrogenium", Symbol: "H", AtomicMass: 1.008, OrderNumber: 1,
			Category: "Nonmetal", Density: ptr(0.00008988), Period: 1, Group: 1, Phase: "Gas",
			BoilingPoint: ptr("20.271"), MeltingPoint: ptr("13.99"),
		},
		{
			Name: "Beryllium", LatinName: "Beryllium", Symbol: "Be", AtomicMass: 9.0122, OrderNumber: 4,
			Category: "Alkaline earth metal", Density: ptr(1.85), Period: 2, Group: 2, Phase: "Solid",
			BoilingPoint: ptr("2742"), MeltingPoint: ptr("1560"),
		},
		{
			Name: "Aluminium", LatinName: "Aluminium", Symbol: "Al", AtomicMass: 26.982, OrderNumber: 13,
			Category: "Post-transition metal", Density: ptr(2.7), Period: 3, Group: 13, Phase: "Solid",
			BoilingPoint: ptr("2743"), MeltingPoint: ptr("933.47"),
		},
		{
			Name: "Bromine", LatinName: "Bromum", Symbol: "Br", AtomicMass: 79.904, OrderNumber: 35,
			Category: "Halogen", Density: ptr(3.1028), Period: 4, Group: 17, Phase: "Liquid",
			BoilingPoint: ptr("332.0"), MeltingPoint: ptr("265.8"),
		},
		{
			Name: "Krypton", LatinName: "Krypton", Symbol: "Kr", AtomicMass: 83.798, OrderNumber: 36,
			Category: "Noble gas", Period: 4, Group: 18, Phase: "Gas",
			BoilingPoint: ptr("119.93"), MeltingPoint: ptr("115.79"),
		},
	}
}
