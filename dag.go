package lantern

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrResourceCycle is returned when a dependency cycle between
	// resources is found. It always indicates that the Relation of some
	// resource contradicts another resource's Relation or the implicit
	// ordering of a Component's resources.
	ErrResourceCycle = errors.New("resource cycle detected")
)

// graph is a directed acyclic graph of resources. Nodes point to the nodes
// they must be rendered after, and those are always walked first.
type graph struct {
	nodes []Resource

	// index maps a resource's ID to its position in nodes.
	index map[string]int

	// deps holds, for each node position, the positions of the nodes it
	// must be rendered after.
	deps map[int]map[int]struct{}
}

func newGraph() *graph {
	return &graph{
		index: map[string]int{},
		deps:  map[int]map[int]struct{}{},
	}
}

// add inserts res into the graph, returning its position and whether it was
// newly inserted. A resource that's already present keeps its first
// position.
func (g *graph) add(res Resource) (int, bool) {
	id := res.ResourceID()
	if pos, ok := g.index[id]; ok {
		return pos, false
	}
	g.nodes = append(g.nodes, res)
	pos := len(g.nodes) - 1
	g.index[id] = pos
	return pos, true
}

// after records that the node at later must be rendered after the node at
// earlier.
func (g *graph) after(later, earlier int) {
	if later == earlier {
		return
	}
	if g.deps[later] == nil {
		g.deps[later] = map[int]struct{}{}
	}
	g.deps[later][earlier] = struct{}{}
}

// addChain adds resources declared together by one Component. Each
// implicitly ordered resource is held after the implicitly ordered resource
// declared before it, so declaration order is preserved.
func (g *graph) addChain(resources []Resource) {
	last := -1
	for _, res := range resources {
		pos, added := g.add(res)
		if !added || !res.implicitlyOrdered() {
			continue
		}
		if last >= 0 {
			g.after(pos, last)
		}
		last = pos
	}
}

// applyRelations adds the edges implied by every resource's Relation.
func (g *graph) applyRelations(ctx context.Context) {
	for pos, res := range g.nodes {
		calc := res.relation()
		if calc == nil {
			continue
		}
		for otherPos, other := range g.nodes {
			if otherPos == pos {
				continue
			}
			switch calc(ctx, other) {
			case ResourceRelationshipAfter:
				g.after(pos, otherPos)
			case ResourceRelationshipBefore:
				g.after(otherPos, pos)
			case ResourceRelationshipNeutral:
				// no constraint
			}
		}
	}
}

// walk returns the nodes in an order that satisfies every edge. When more
// than one node is ready, links come before inline resources, then the
// lowest ResourceID wins, so the output is deterministic.
func (g *graph) walk() ([]Resource, error) {
	pending := make(map[int]map[int]struct{}, len(g.deps))
	for pos, deps := range g.deps {
		pending[pos] = make(map[int]struct{}, len(deps))
		for dep := range deps {
			pending[pos][dep] = struct{}{}
		}
	}
	done := make([]bool, len(g.nodes))
	results := make([]Resource, 0, len(g.nodes))
	for len(results) < len(g.nodes) {
		next := -1
		for pos := range g.nodes {
			if done[pos] || len(pending[pos]) > 0 {
				continue
			}
			if next < 0 || compareResources(g.nodes[pos], g.nodes[next]) < 0 {
				next = pos
			}
		}
		if next < 0 {
			var stuck []string
			for pos, res := range g.nodes {
				if !done[pos] {
					stuck = append(stuck, res.ResourceID())
				}
			}
			return results, fmt.Errorf("%w: unresolved=[%s]", ErrResourceCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		results = append(results, g.nodes[next])
		for _, deps := range pending {
			delete(deps, next)
		}
	}
	return results, nil
}

func compareResources(a, b Resource) int {
	if a.isLink() != b.isLink() {
		if a.isLink() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.ResourceID(), b.ResourceID())
}

// resourceGraphs holds one graph for CSS resources, one for JavaScript that
// belongs in the page header, and one for JavaScript that belongs in the page
// footer.
type resourceGraphs struct {
	css    *graph
	headJS *graph
	footJS *graph
}

func buildGraphs(ctx context.Context, components []Component) resourceGraphs {
	result := resourceGraphs{
		css:    newGraph(),
		headJS: newGraph(),
		footJS: newGraph(),
	}
	for _, component := range components {
		if linker, ok := component.(CSSLinker); ok {
			var chain []Resource
			for _, link := range linker.LinkCSS(ctx) {
				chain = append(chain, link)
			}
			result.css.addChain(chain)
		}
		if embedder, ok := component.(CSSEmbedder); ok {
			var chain []Resource
			for _, block := range embedder.EmbedCSS(ctx) {
				chain = append(chain, block)
			}
			result.css.addChain(chain)
		}
		if linker, ok := component.(JSLinker); ok {
			var head, foot []Resource
			for _, link := range linker.LinkJS(ctx) {
				if link.PlaceInFooter {
					foot = append(foot, link)
				} else {
					head = append(head, link)
				}
			}
			result.headJS.addChain(head)
			result.footJS.addChain(foot)
		}
		if embedder, ok := component.(JSEmbedder); ok {
			var head, foot []Resource
			for _, block := range embedder.EmbedJS(ctx) {
				if block.PlaceInFooter {
					foot = append(foot, block)
				} else {
					head = append(head, block)
				}
			}
			result.headJS.addChain(head)
			result.footJS.addChain(foot)
		}
	}
	result.css.applyRelations(ctx)
	result.headJS.applyRelations(ctx)
	result.footJS.applyRelations(ctx)
	return result
}
