package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/greenroute/bfs"
	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
)

// ExampleIslands lists the connected parts of a network with a detached
// microgrid and an unconnected battery.
func ExampleIslands() {
	reg := energy.NewRegistry()
	for _, id := range []string{"Plant", "Sub", "Town", "Wind", "Farm", "Battery"} {
		reg.Put(energy.EnergyNode{ID: id, Loss: 1, Sustainability: 50})
	}
	adj := energy.NewAdjacency()
	adj.Connect("Plant", "Sub")
	adj.Connect("Sub", "Town")
	adj.Connect("Wind", "Farm")

	net, err := core.NewNetwork(reg, adj)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, island := range bfs.Islands(net) {
		fmt.Println(island)
	}

	// Output:
	// [Battery]
	// [Farm Wind]
	// [Plant Sub Town]
}
