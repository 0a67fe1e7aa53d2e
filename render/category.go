// Package render turns a core.Network into data for visual front-ends:
// node categories and colors, node/edge views with resolved weights, and a
// Graphviz DOT export with optional route highlighting.
//
// Render only reads the network; it never mutates it.
package render

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/greenroute/energy"
)

// Category is the visual class of a node.
type Category int

// Categories in classification priority order.
const (
	Generator Category = iota
	Residential
	Storage
	Substation
	Other
	categoryCount
)

var categoryNames = [categoryCount]string{"generator", "residential", "storage", "substation", "other"}

// Plot colors per category.
var categoryColors = [categoryCount]string{"green", "red", "blue", "orange", "gray"}

// categoryKeywords are matched against the folded node id.
var categoryKeywords = []struct {
	c        Category
	keywords []string
}{
	{Residential, []string{"residential", "residencial"}},
	{Storage, []string{"storage", "almacenamiento"}},
	{Substation, []string{"substation", "subestacion"}},
}

// String returns the lower-case category name.
func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || c >= categoryCount {
		return nil, fmt.Errorf("render: invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// Classify derives the category of n: any producing node is a Generator;
// otherwise the id is searched (case and accent insensitive) for
// residential, storage and substation keywords in that order.
func Classify(n energy.EnergyNode) Category {
	if n.Production > 0 {
		return Generator
	}
	id := energy.FoldKey(n.ID)
	for _, k := range categoryKeywords {
		for _, kw := range k.keywords {
			if strings.Contains(id, kw) {
				return k.c
			}
		}
	}

	return Other
}

// Color returns the plot color of c; unknown categories are gray.
func Color(c Category) string {
	if c < 0 || c >= categoryCount {
		return categoryColors[Other]
	}
	return categoryColors[c]
}
