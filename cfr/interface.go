// Package cfr implements vanilla Counterfactual Regret Minimization for
// two-player zero-sum extensive-form games.
package cfr

// NodeType is the type of node in an extensive-form game tree.
type NodeType int

const (
	ChanceNode NodeType = iota
	TerminalNode
	PlayerNode
)

// InfoSet is the observable game history from the point of view of one player.
type InfoSet interface {
	// Key is an identifier used to uniquely look up this InfoSet
	// when accumulating probabilities in tabular CFR.
	//
	// It may be an arbitrary string of bytes and does not need to be
	// human-readable. For example, it could be a simplified abstraction
	// or hash of the full game history.
	Key() string
}

// GameTreeNode is the interface for a node in an extensive-form game tree.
type GameTreeNode interface {
	// Type returns the type of game node.
	Type() NodeType
	// Close releases resources held by this node (including any children).
	Close()

	// The number of direct children of this node.
	NumChildren() int
	// Get the ith child of this node.
	GetChild(i int) GameTreeNode
	// Get the probability of the ith child of this node.
	// May only be called for nodes with Type == ChanceNode.
	GetChildProbability(i int) float32

	// Player returns this node's acting player. For terminal nodes it is
	// the player whose turn it would be.
	Player() int
	// InfoSet returns the information set for this node for the given player.
	InfoSet(player int) InfoSet
	// Utility returns this node's utility for the given player.
	// It must only be called for nodes with Type == TerminalNode.
	Utility(player int) float32
}

// NodePolicy learns a strategy for play at a given information set.
type NodePolicy interface {
	// GetStrategy returns the action probabilities to use during the
	// current iteration. The returned slice must not be modified.
	GetStrategy() []float32
	// AddReachProb accumulates the acting player's probability of
	// reaching this information set during the current iteration.
	AddReachProb(w float32)
	// AddRegret provides new observed instantaneous regrets, weighted by
	// the counterfactual probability that the opponent and chance reached
	// this information set.
	AddRegret(counterfactualP float32, instantaneousRegrets []float32)
	// NextStrategy folds the completed iteration into the average and
	// recomputes the current strategy based on the accumulated regret.
	NextStrategy()
	// GetAverageStrategy returns the average strategy over all iterations,
	// with probabilities below the given threshold zeroed out.
	GetAverageStrategy(purificationThreshold float32) []float32
}

// StrategyProfile maintains a NodePolicy for each information set that is
// visited in a traversal of the game tree.
type StrategyProfile interface {
	// GetPolicy returns the NodePolicy for the given node, creating it
	// if the information set has not been visited before.
	GetPolicy(node GameTreeNode) NodePolicy
	// Update advances all policies touched since the last call to Update.
	Update()
	// Iter returns the current iteration (the number of times that
	// Update has been called, plus one).
	Iter() int
	// Close releases any resources held by the profile.
	Close() error
}
