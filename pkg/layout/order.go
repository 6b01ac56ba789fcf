package layout

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/graphologue/pkg/dag"
)

// DefaultPasses is the number of barycentric sweeps run by [Layered] when
// Passes is zero.
const DefaultPasses = 24

// orderRanks returns a left-to-right order for every rank of a layered
// graph. It starts from a depth-first order, then alternates downward and
// upward barycentric sweeps, each followed by adjacent swaps, and keeps the
// ordering with the fewest crossings.
func orderRanks(ctx context.Context, g *dag.DAG, passes int) (map[int][]string, error) {
	ranks := g.RankIDs()
	orders := initialOrder(g, ranks)

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)

	for i := 0; i < passes && bestCrossings > 0; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i%2 == 0 {
			for k := 1; k < len(ranks); k++ {
				sortByBarycenter(orders[ranks[k]], g.Parents, orders[ranks[k-1]])
			}
		} else {
			for k := len(ranks) - 2; k >= 0; k-- {
				sortByBarycenter(orders[ranks[k]], g.Children, orders[ranks[k+1]])
			}
		}
		transpose(g, ranks, orders)

		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			best, bestCrossings = cloneOrders(orders), c
		}
	}
	return best, nil
}

// initialOrder places nodes in the order a depth-first walk from the
// sources reaches them, which keeps subtrees together.
func initialOrder(g *dag.DAG, ranks []int) map[int][]string {
	orders := make(map[int][]string, len(ranks))
	visited := make(map[string]bool, g.NodeCount())

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		n, _ := g.Node(id)
		orders[n.Rank] = append(orders[n.Rank], id)
		for _, child := range g.Children(id) {
			visit(child)
		}
	}

	for _, r := range ranks {
		for _, n := range g.NodesInRank(r) {
			visit(n.ID)
		}
	}
	return orders
}

// sortByBarycenter reorders ids in place by the mean position of their
// neighbours in adj. Nodes without neighbours in adj keep their index.
func sortByBarycenter(ids []string, neighbors func(string) []string, adj []string) {
	pos := dag.PosMap(adj)

	type item struct {
		id string
		bc float64
	}
	var movable []item
	fixed := make(map[int]string)
	for i, id := range ids {
		sum, n := 0, 0
		for _, nb := range neighbors(id) {
			if p, ok := pos[nb]; ok {
				sum += p
				n++
			}
		}
		if n == 0 {
			fixed[i] = id
			continue
		}
		movable = append(movable, item{id, float64(sum) / float64(n)})
	}

	slices.SortStableFunc(movable, func(a, b item) int { return cmp.Compare(a.bc, b.bc) })

	next := 0
	for i := range ids {
		if id, ok := fixed[i]; ok {
			ids[i] = id
			continue
		}
		ids[i] = movable[next].id
		next++
	}
}

// transpose swaps adjacent nodes while doing so strictly reduces the
// crossings around their rank.
func transpose(g *dag.DAG, ranks []int, orders map[int][]string) {
	local := func(k int) int {
		c := 0
		if k > 0 {
			c += dag.CountLayerCrossings(g, orders[ranks[k-1]], orders[ranks[k]])
		}
		if k+1 < len(ranks) {
			c += dag.CountLayerCrossings(g, orders[ranks[k]], orders[ranks[k+1]])
		}
		return c
	}

	for improved := true; improved; {
		improved = false
		for k, r := range ranks {
			row := orders[r]
			for i := 0; i+1 < len(row); i++ {
				before := local(k)
				if before == 0 {
					break
				}
				row[i], row[i+1] = row[i+1], row[i]
				if local(k) < before {
					improved = true
					continue
				}
				row[i], row[i+1] = row[i+1], row[i]
			}
		}
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		out[r] = slices.Clone(ids)
	}
	return out
}
