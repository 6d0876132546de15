package dedup

import (
	"log/slog"
	"sort"
)

// extractClusters walks every connected component with an explicit-stack DFS and keeps
// the most connected node of each as its representative. Start nodes are taken in index
// order and neighbors are pushed in ascending order, so the walk is reproducible.
func (g *graph) extractClusters(tieBreak TieBreaker) []Cluster {
	clusters := make([]Cluster, 0)

	for start := range g.tokens {
		if g.visited[start] {
			continue
		}

		best := start
		var members []string
		stack := []int{start}

		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if g.visited[node] {
				continue // pushed twice via different neighbors
			}
			g.visited[node] = true
			members = append(members, g.tokens[node])

			if g.better(node, best, tieBreak) {
				best = node
			}

			for _, neighbor := range g.neighbors[node] {
				if !g.visited[neighbor] {
					stack = append(stack, neighbor)
				}
			}
		}

		sort.Strings(members)
		clusters = append(clusters, Cluster{
			Representative: g.tokens[best],
			Members:        members,
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Representative < clusters[j].Representative
	})

	slog.Debug("Clusters extracted", "clusters", len(clusters))
	return clusters
}

// better reports whether node should replace best: strictly more neighbors wins,
// and an equal count defers to the tie-breaker.
func (g *graph) better(node, best int, tieBreak TieBreaker) bool {
	nodeDegree, bestDegree := len(g.neighbors[node]), len(g.neighbors[best])
	switch {
	case nodeDegree > bestDegree:
		return true
	case nodeDegree == bestDegree && node != best:
		return tieBreak.Prefer(g.tokens[node], g.tokens[best])
	default:
		return false
	}
}
