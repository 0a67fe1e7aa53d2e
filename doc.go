// Package greenroute finds routes through a renewable-energy network.
//
// A network is read from two CSV tables: a node table (name, production,
// loss, sustainability) and a square adjacency table of 0/1 flags. Every
// link is weighed on the fly under one of three strategies:
//
//	loss            (lossA + lossB) / 2
//	sustainability  C − (sustA + sustB) / 2          C = 200 by default
//	production      K / (prodA + prodB + 1)          K = 1000 by default
//
// and the cheapest route between two nodes is found with Dijkstra.
//
// Layout:
//
//	energy/        node and adjacency tables: types, CSV loading and writing
//	strategy/      strategies and the link weight formulas
//	core/          immutable Network built from the two tables
//	dijkstra/      cheapest routes under a strategy
//	bfs/           reachability and islands
//	dfs/           depth-first search, cut nodes and bridges
//	mst/           backbone: minimum spanning forest under a strategy
//	flow/          redundancy: link- or node-disjoint routes and min cuts
//	builder/       synthetic networks (path, cycle, star, wheel, grid, random)
//	render/        node categories and colors, Graphviz export
//	network/       reloadable Service holding the published network
//	api/           HTTP/JSON handlers and middleware
//	config/        viper-backed configuration
//	observability/ zap logging and Prometheus metrics
//	cmd/greenroute the command line tool
//
// Quick start:
//
//	greenroute route --nodes nodes.csv --adjacency matrix.csv "Solar Farm" "Residential East"
//	greenroute serve --nodes nodes.csv --adjacency matrix.csv --addr :8080
package greenroute
