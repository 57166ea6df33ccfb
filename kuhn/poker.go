// Package kuhn implements an extensive-form game tree for Kuhn Poker,
// adapted from: https://justinsermeno.com/posts/cfr/.
package kuhn

import (
	"fmt"

	"kuhncfr/cfr"
)

const (
	chance  = -1
	player0 = 0
	player1 = 1
)

// Action is a player move: check or bet.
type Action byte

const (
	Check Action = 'c'
	Bet   Action = 'b'
)

// Card is one of the three ranks in the deck.
type Card int

const (
	Jack Card = iota
	Queen
	King
)

var cardStr = [...]string{
	"J",
	"Q",
	"K",
}

func (c Card) String() string {
	return cardStr[c]
}

// PokerNode implements cfr.GameTreeNode for Kuhn Poker.
//
// The deal is a single chance node at the root enumerating the six ordered
// pairs of distinct cards; history records only the actions taken since
// the deal.
type PokerNode struct {
	player        int
	children      []PokerNode
	probabilities []float32
	history       string

	// Private card held by either player.
	p0Card, p1Card Card
}

// NewGame returns the root chance node of a new game tree.
func NewGame() *PokerNode {
	return &PokerNode{player: chance}
}

// String implements fmt.Stringer.
func (k *PokerNode) String() string {
	return fmt.Sprintf("Player %v's turn. History: %3s [Cards: P0 - %s, P1 - %s]",
		k.player, k.history, k.p0Card, k.p1Card)
}

// Close implements cfr.GameTreeNode.
func (k *PokerNode) Close() {
	k.children = nil
	k.probabilities = nil
}

// NumChildren implements cfr.GameTreeNode.
func (k *PokerNode) NumChildren() int {
	if k.children == nil {
		k.buildChildren()
	}

	return len(k.children)
}

// GetChild implements cfr.GameTreeNode.
func (k *PokerNode) GetChild(i int) cfr.GameTreeNode {
	if k.children == nil {
		k.buildChildren()
	}

	return &k.children[i]
}

// GetChildProbability implements cfr.GameTreeNode.
func (k *PokerNode) GetChildProbability(i int) float32 {
	if k.children == nil {
		k.buildChildren()
	}

	return k.probabilities[i]
}

// Type implements cfr.GameTreeNode.
func (k *PokerNode) Type() cfr.NodeType {
	if k.IsTerminal() {
		return cfr.TerminalNode
	} else if k.player == chance {
		return cfr.ChanceNode
	}

	return cfr.PlayerNode
}

// IsTerminal returns true once the hand has been played out: a showdown
// after check/check, bet/call or check/bet/call, or a fold.
func (k *PokerNode) IsTerminal() bool {
	switch k.history {
	case "cc", "bb", "bc", "cbb", "cbc":
		return true
	}

	return false
}

// Player implements cfr.GameTreeNode. At a terminal node it is the player
// whose turn it would be.
func (k *PokerNode) Player() int {
	return k.player
}

// Utility implements cfr.GameTreeNode.
func (k *PokerNode) Utility(player int) float32 {
	cardPlayer := k.playerCard(player)
	cardOpponent := k.playerCard(1 - player)

	switch k.history {
	case "cbc", "bc":
		// Last player folded. The current player wins the ante.
		if k.player == player {
			return 1.0
		}
		return -1.0
	case "cc":
		// Showdown with no bets. Cards are always distinct, so no tie.
		if cardPlayer > cardOpponent {
			return 1.0
		}
		return -1.0
	case "bb", "cbb":
		// Showdown with 1 bet.
		if cardPlayer > cardOpponent {
			return 2.0
		}
		return -2.0
	}

	panic("unexpected terminal history: " + k.history)
}

type pokerInfoSet string

func (p pokerInfoSet) Key() string {
	return string(p)
}

// InfoSet implements cfr.GameTreeNode. The key is the acting player's card
// label followed by the actions since the deal, e.g. "Kcb". The opponent's
// hidden card does not contribute: histories differing only in it collapse
// to the same information set.
func (k *PokerNode) InfoSet(player int) cfr.InfoSet {
	return pokerInfoSet(k.playerCard(player).String() + k.history)
}

func (k *PokerNode) playerCard(player int) Card {
	if player == player0 {
		return k.p0Card
	}

	return k.p1Card
}

func (k *PokerNode) buildChildren() {
	if k.player == chance {
		k.children = buildDeals()
		k.probabilities = uniformDist(len(k.children))
		return
	}

	if k.IsTerminal() {
		return
	}

	k.children = buildActionChildren(k)
}

// buildDeals enumerates the 6 ordered deals of distinct cards.
func buildDeals() []PokerNode {
	var result []PokerNode
	for _, c0 := range []Card{Jack, Queen, King} {
		for _, c1 := range []Card{Jack, Queen, King} {
			if c0 == c1 {
				continue // Both players can't be dealt the same card.
			}

			child := PokerNode{
				player: player0,
				p0Card: c0,
				p1Card: c1,
			}

			result = append(result, child)
		}
	}

	return result
}

func buildActionChildren(parent *PokerNode) []PokerNode {
	var result []PokerNode
	for _, choice := range []Action{Check, Bet} {
		child := *parent
		child.player = 1 - parent.player
		child.history = parent.history + string(byte(choice))
		result = append(result, child)
	}

	return result
}

func uniformDist(n int) []float32 {
	result := make([]float32, n)
	for i := range result {
		result[i] = 1.0 / float32(n)
	}
	return result
}
