package amd

import "testing"

func TestOrderIsPermutation(t *testing.T) {
	adjacency := [][]int{
		{1, 2},
		{0, 2, 3},
		{0, 1},
		{1},
	}
	perm := Order(4, adjacency)
	if len(perm) != 4 {
		t.Fatalf("len(perm) = %d, want 4", len(perm))
	}
	seen := make([]bool, 4)
	for _, p := range perm {
		if p < 0 || p >= 4 || seen[p] {
			t.Fatalf("perm %v is not a permutation of 0..3", perm)
		}
		seen[p] = true
	}
}

func TestInvertRoundTrips(t *testing.T) {
	perm := []int{2, 0, 3, 1}
	inv := Invert(perm)
	for k, i := range perm {
		if inv[i] != k {
			t.Errorf("inv[%d] = %d, want %d", i, inv[i], k)
		}
	}
}

func TestOrderSingleNode(t *testing.T) {
	perm := Order(1, [][]int{{}})
	if len(perm) != 1 || perm[0] != 0 {
		t.Errorf("Order(1, ...) = %v, want [0]", perm)
	}
}

func TestOrderIsolatedNodesPickedFirst(t *testing.T) {
	// node 0 has no edges; node 1-2 are connected. A minimum-degree
	// elimination must eliminate the isolated node before either
	// endpoint of the edge.
	adjacency := [][]int{
		{},
		{2},
		{1},
	}
	perm := Order(3, adjacency)
	if perm[0] != 0 {
		t.Errorf("perm[0] = %d, want 0 (the isolated node)", perm[0])
	}
}
