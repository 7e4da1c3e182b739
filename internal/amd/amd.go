// Package amd computes a fill-reducing symmetric permutation of a
// sparse pattern by greedy minimum-degree elimination, the same
// approximation AMD-style orderings are built on: repeatedly eliminate
// the remaining node of smallest degree and add a fill-in clique among
// its still-live neighbours.
package amd

// Order computes a permutation of {0, ..., n-1} that eliminates, at
// each step, a remaining node of minimum degree in the elimination
// graph (the original pattern plus fill-in edges introduced by prior
// eliminations). adjacency[i] lists the neighbours of node i in the
// symmetrised pattern (typically A + A^T with self-loops ignored);
// it need not be sorted and may contain duplicates.
//
// The returned perm is the elimination order: perm[0] is the first
// node eliminated. Use Invert to obtain the permutation mapping
// original index to its position in that order.
func Order(n int, adjacency [][]int) []int {
	adj := make([]map[int]struct{}, n)
	for i := range adj {
		adj[i] = make(map[int]struct{})
	}
	for i, nbrs := range adjacency {
		for _, j := range nbrs {
			if j != i {
				adj[i][j] = struct{}{}
				adj[j][i] = struct{}{}
			}
		}
	}

	eliminated := make([]bool, n)
	perm := make([]int, 0, n)
	for len(perm) < n {
		best, bestDeg := -1, -1
		for i := 0; i < n; i++ {
			if eliminated[i] {
				continue
			}
			if d := len(adj[i]); bestDeg == -1 || d < bestDeg {
				best, bestDeg = i, d
			}
		}
		perm = append(perm, best)
		eliminated[best] = true

		live := make([]int, 0, len(adj[best]))
		for j := range adj[best] {
			if !eliminated[j] {
				live = append(live, j)
			}
		}
		for _, j := range live {
			delete(adj[j], best)
		}
		for a := 0; a < len(live); a++ {
			for b := a + 1; b < len(live); b++ {
				u, v := live[a], live[b]
				adj[u][v] = struct{}{}
				adj[v][u] = struct{}{}
			}
		}
		adj[best] = nil
	}
	return perm
}

// Invert returns inv such that inv[perm[k]] == k for every k: the map
// from original index to its position in the elimination order.
func Invert(perm []int) []int {
	inv := make([]int, len(perm))
	for k, i := range perm {
		inv[i] = k
	}
	return inv
}
