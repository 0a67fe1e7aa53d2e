// Package builder generates synthetic energy networks for fixtures,
// benchmarks and the CLI "generate" command.
//
// A build composes one or more topology Constructors over a shared
// energy.Registry and energy.Adjacency:
//
//   - Constructor: adds nodes (ids from an IDFn, attributes from an
//     AttributeFn) and connects them in a documented, stable order.
//   - BuilderOption: tunes the resolved builderConfig (seed, id scheme,
//     attribute generator).
//
// Topologies: Path, Cycle, Star, Wheel, Complete, Grid, RandomSparse.
//
// Id schemes (IDFn): DefaultIDFn ("0","1",…), ExcelColumnIDFn ("A","B",…,
// "AA"), SymbolNumberIDFn(prefix) ("N0","N1",…) and CategoryIDFn
// ("Solar_0","Substation_1","Residential_2","Storage_3",…), the latter
// chosen so every render category shows up in generated data.
//
// Guarantees:
//
//   - Determinism: same options, seed and constructor order ⇒ identical tables.
//   - Composition: constructors sharing ids overlay edges on the same nodes;
//     a node keeps the attributes it was first created with.
//   - Every generated node passes energy.EnergyNode.Validate.
//   - Constructors never panic; option constructors panic on nil functions.
package builder
