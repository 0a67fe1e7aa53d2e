package mst_test

import (
	"fmt"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/mst"
	"github.com/katalvlaran/greenroute/strategy"
)

// ExampleKruskal keeps the least lossy links that still reach every node.
func ExampleKruskal() {
	reg := energy.NewRegistry()
	reg.Put(energy.EnergyNode{ID: "Plant", Production: 500, Loss: 1, Sustainability: 30})
	reg.Put(energy.EnergyNode{ID: "Sub", Loss: 3, Sustainability: 50})
	reg.Put(energy.EnergyNode{ID: "Town", Loss: 9, Sustainability: 50})
	adj := energy.NewAdjacency()
	adj.Connect("Plant", "Sub")
	adj.Connect("Sub", "Town")
	adj.Connect("Plant", "Town")

	net, err := core.NewNetwork(reg, adj)
	if err != nil {
		fmt.Println(err)
		return
	}
	bb, err := mst.Kruskal(net, strategy.MinimizeLoss)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, l := range bb.Links {
		fmt.Printf("%s -- %s %.1f\n", l.From, l.To, l.Weight)
	}
	fmt.Printf("total %.1f\n", bb.Cost)

	// Output:
	// Plant -- Sub 2.0
	// Plant -- Town 5.0
	// total 7.0
}
