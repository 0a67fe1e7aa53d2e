package flow_test

import (
	"fmt"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/flow"
)

// ExampleRedundancy checks that a hospital is fed over two independent lines.
func ExampleRedundancy() {
	reg := energy.NewRegistry()
	for _, id := range []string{"Plant", "North", "South", "Hospital"} {
		reg.Put(energy.EnergyNode{ID: id, Loss: 1, Sustainability: 50})
	}
	adj := energy.NewAdjacency()
	adj.Connect("Plant", "North")
	adj.Connect("Plant", "South")
	adj.Connect("North", "Hospital")
	adj.Connect("South", "Hospital")

	net, err := core.NewNetwork(reg, adj)
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := flow.Redundancy(net, "Plant", "Hospital", flow.WithMode(flow.NodeDisjoint))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Count)
	for _, r := range res.Routes {
		fmt.Println(r)
	}
	fmt.Println(res.CutNodes)

	// Output:
	// 2
	// [Plant North Hospital]
	// [Plant South Hospital]
	// [North South]
}
