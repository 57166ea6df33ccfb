// Package tree provides read-only walkers over extensive-form game trees,
// used for reporting and tests.
package tree

import (
	"kuhncfr/cfr"
)

// Visit calls visitor for every node of the tree in depth-first preorder.
func Visit(root cfr.GameTreeNode, visitor func(node cfr.GameTreeNode)) {
	visitor(root)
	for i := 0; i < root.NumChildren(); i++ {
		child := root.GetChild(i)
		Visit(child, visitor)
	}
}

// VisitInfoSets calls visitor once for each distinct information set in the
// tree, with the player acting at it.
func VisitInfoSets(root cfr.GameTreeNode, visitor func(player int, infoSet string)) {
	seen := make(map[string]struct{})
	Visit(root, func(node cfr.GameTreeNode) {
		if node.Type() != cfr.PlayerNode {
			return
		}

		player := node.Player()
		infoSet := node.InfoSet(player).Key()
		if _, ok := seen[infoSet]; ok {
			return
		}

		visitor(player, infoSet)
		seen[infoSet] = struct{}{}
	})
}

func CountTerminalNodes(root cfr.GameTreeNode) int {
	total := 0
	Visit(root, func(node cfr.GameTreeNode) {
		if node.Type() == cfr.TerminalNode {
			total++
		}
	})

	return total
}

func CountNodes(root cfr.GameTreeNode) int {
	total := 0
	Visit(root, func(node cfr.GameTreeNode) { total++ })
	return total
}

func CountInfoSets(root cfr.GameTreeNode) int {
	total := 0
	VisitInfoSets(root, func(player int, infoSet string) { total++ })
	return total
}
