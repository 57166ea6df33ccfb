package cfr

import (
	"kuhncfr/internal/f32"
)

// Vanilla implements vanilla CFR: each iteration performs one complete
// depth-first pass over the game tree, updating the regrets of every
// information set it visits.
type Vanilla struct {
	profile   StrategyProfile
	slicePool *floatSlicePool
}

// NewVanilla creates a solver that accumulates regrets and strategy sums
// into the given profile.
func NewVanilla(profile StrategyProfile) *Vanilla {
	return &Vanilla{
		profile:   profile,
		slicePool: &floatSlicePool{},
	}
}

// Run performs a single CFR iteration over the game tree rooted at node and
// returns its expected value for player 0. The caller should invoke
// Update on the strategy profile after each iteration to advance the
// strategies before the next one.
func (v *Vanilla) Run(node GameTreeNode) float32 {
	return v.runHelper(node, 1.0, 1.0, 1.0)
}

func (v *Vanilla) runHelper(node GameTreeNode, reachP0, reachP1, reachChance float32) float32 {
	var ev float32
	switch node.Type() {
	case TerminalNode:
		ev = node.Utility(node.Player())
	case ChanceNode:
		ev = v.handleChanceNode(node, reachP0, reachP1, reachChance)
	default:
		ev = v.handlePlayerNode(node, reachP0, reachP1, reachChance)
	}

	node.Close()
	return ev
}

func (v *Vanilla) handleChanceNode(node GameTreeNode, reachP0, reachP1, reachChance float32) float32 {
	var expectedValue float32
	for i := 0; i < node.NumChildren(); i++ {
		child := node.GetChild(i)
		p := node.GetChildProbability(i)
		expectedValue += v.runHelper(child, reachP0, reachP1, reachChance*p)
	}

	return expectedValue / float32(node.NumChildren())
}

func (v *Vanilla) handlePlayerNode(node GameTreeNode, reachP0, reachP1, reachChance float32) float32 {
	player := node.Player()
	np := v.profile.GetPolicy(node)
	np.AddReachProb(reachProb(player, reachP0, reachP1, reachChance))

	strategy := np.GetStrategy()
	actionUtils := v.slicePool.alloc(node.NumChildren())
	for i := 0; i < node.NumChildren(); i++ {
		child := node.GetChild(i)
		p := strategy[i]
		if player == 0 {
			actionUtils[i] = -1 * v.runHelper(child, p*reachP0, reachP1, reachChance)
		} else {
			actionUtils[i] = -1 * v.runHelper(child, reachP0, p*reachP1, reachChance)
		}
	}

	nodeUtil := f32.DotUnitary(strategy, actionUtils)
	// Instantaneous regret: how much better each action would have been
	// than the mixed strategy actually played.
	f32.AddConst(-nodeUtil, actionUtils)
	np.AddRegret(counterFactualProb(player, reachP0, reachP1, reachChance), actionUtils)
	v.slicePool.free(actionUtils)
	return nodeUtil
}

func reachProb(player int, reachP0, reachP1, reachChance float32) float32 {
	if player == 0 {
		return reachP0 * reachChance
	}

	return reachP1 * reachChance
}

// The probability of reaching this node, assuming that the current player
// tried to reach it.
func counterFactualProb(player int, reachP0, reachP1, reachChance float32) float32 {
	if player == 0 {
		return reachP1 * reachChance
	}

	return reachP0 * reachChance
}
