package core_test

import (
	"fmt"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
)

// ExampleNewNetwork composes a registry and an adjacency table.
func ExampleNewNetwork() {
	reg := energy.NewRegistry()
	reg.Put(energy.EnergyNode{ID: "Solar", Production: 250, Loss: 1.5, Sustainability: 95})
	reg.Put(energy.EnergyNode{ID: "Substation", Loss: 5, Sustainability: 60})
	reg.Put(energy.EnergyNode{ID: "Homes", Loss: 8, Sustainability: 40})

	adj := energy.NewAdjacency()
	adj.Connect("Solar", "Substation")
	adj.Connect("Substation", "Homes")

	net, err := core.NewNetwork(reg, adj)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Nodes:", net.IDs())
	fmt.Println("Edges:", net.Edges())
	fmt.Println("Substation neighbors:", net.Neighbors("Substation"))

	// Output:
	// Nodes: [Homes Solar Substation]
	// Edges: [Homes—Substation Solar—Substation]
	// Substation neighbors: [Homes Solar]
}
