package kuhn

import (
	"bytes"
	"math"
	"testing"

	"kuhncfr/cfr"
	"kuhncfr/tree"
)

func TestPoker_GameTree(t *testing.T) {
	root := NewGame()

	nNodes := tree.CountNodes(root)
	if nNodes != 55 {
		t.Errorf("expected %d nodes, got %d", 55, nNodes)
	}

	nTerminal := tree.CountTerminalNodes(root)
	if nTerminal != 30 {
		t.Errorf("expected %d terminal nodes, got %d", 30, nTerminal)
	}
}

func TestPoker_InfoSets(t *testing.T) {
	root := NewGame()
	nInfoSets := tree.CountInfoSets(root)
	if nInfoSets != 12 {
		t.Errorf("expected %d infosets, got %d", 12, nInfoSets)
	}
}

func TestPoker_Deal(t *testing.T) {
	root := NewGame()
	if root.Type() != cfr.ChanceNode {
		t.Fatal("expected the root to be the chance node")
	}

	if root.NumChildren() != 6 {
		t.Fatalf("expected 6 ordered deals, got %d", root.NumChildren())
	}

	for i := 0; i < root.NumChildren(); i++ {
		if p := root.GetChildProbability(i); p != 1.0/float32(6) {
			t.Errorf("expected deal probability 1/6, got %v", p)
		}
	}
}

// Every history reachable by extending a decision node must itself be a
// decision node or terminal: nothing is left unclassified.
func TestPoker_TerminalClassification(t *testing.T) {
	root := NewGame()
	tree.Visit(root, func(node cfr.GameTreeNode) {
		k := node.(*PokerNode)
		if len(k.history) > 3 {
			t.Errorf("history %q exceeds the maximum hand length", k.history)
		}

		switch node.Type() {
		case cfr.ChanceNode:
			if k != root {
				t.Errorf("unexpected chance node at %v; the deal happens once, at the root", k)
			}
		case cfr.TerminalNode:
			if node.NumChildren() != 0 {
				t.Errorf("terminal node %v has children", k)
			}
		case cfr.PlayerNode:
			if node.NumChildren() != 2 {
				t.Errorf("expected 2 actions at %v, got %d", k, node.NumChildren())
			}
		default:
			t.Errorf("node %v has unknown type %v", k, node.Type())
		}
	})
}

// Computing a terminal utility with the players swapped must negate it.
func TestPoker_UtilityZeroSum(t *testing.T) {
	root := NewGame()
	tree.Visit(root, func(node cfr.GameTreeNode) {
		if node.Type() != cfr.TerminalNode {
			return
		}

		u0 := node.Utility(player0)
		u1 := node.Utility(player1)
		if u0 != -u1 {
			t.Errorf("%v: utilities %v and %v do not sum to zero", node, u0, u1)
		}
	})
}

func TestPoker_VanillaCFR(t *testing.T) {
	root := NewGame()
	policy := cfr.NewPolicyTable(cfr.DefaultParams())
	vanillaCFR := cfr.NewVanilla(policy)

	var expectedValue float32
	nIter := 100000
	for i := 1; i <= nIter; i++ {
		expectedValue += vanillaCFR.Run(root)
		policy.Update()
		if i%(nIter/10) == 0 {
			t.Logf("[iter=%d] Expected game value: %.4f", i, expectedValue/float32(i))
		}
	}

	// Kuhn Poker's equilibrium game value is -1/18 for the first player.
	avgValue := float64(expectedValue) / float64(nIter)
	if math.Abs(avgValue+1.0/18.0) > 0.005 {
		t.Errorf("expected game value near %.4f, got %.4f", -1.0/18.0, avgValue)
	}

	tree.VisitInfoSets(root, func(player int, infoSet string) {
		strat := policy.GetStrategy(infoSet)
		t.Logf("[player %d] %4s: check=%.2f bet=%.2f", player, infoSet, strat[0], strat[1])
	})

	// Qualitative equilibrium shape: the King always bets once the
	// opponent has checked, always calls a bet, and the Jack always folds
	// to one.
	for _, tc := range []struct {
		infoSet string
		betProb float64
	}{
		{"Kc", 1.0},
		{"Kb", 1.0},
		{"Kcb", 1.0},
		{"Jb", 0.0},
		{"Jcb", 0.0},
	} {
		strat := policy.GetStrategy(tc.infoSet)
		if strat == nil {
			t.Fatalf("no strategy learned for %v", tc.infoSet)
		}

		if math.Abs(float64(strat[1])-tc.betProb) > 0.02 {
			t.Errorf("%v: expected bet probability %.2f, got %.2f", tc.infoSet, tc.betProb, strat[1])
		}
	}
}

func TestPoker_LoadSave(t *testing.T) {
	root := NewGame()
	policy := cfr.NewPolicyTable(cfr.DefaultParams())
	vanillaCFR := cfr.NewVanilla(policy)
	for i := 1; i <= 10; i++ {
		vanillaCFR.Run(root)
		policy.Update()
	}

	var buf bytes.Buffer
	if err := policy.MarshalTo(&buf); err != nil {
		t.Fatal(err)
	}

	reloaded, err := cfr.LoadPolicyTable(&buf)
	if err != nil {
		t.Fatal(err)
	}

	tree.VisitInfoSets(root, func(player int, infoSet string) {
		strat := policy.GetStrategy(infoSet)
		reloadedStrat := reloaded.GetStrategy(infoSet)
		if len(strat) != len(reloadedStrat) || strat[0] != reloadedStrat[0] || strat[1] != reloadedStrat[1] {
			t.Errorf("failed to reload policy for %v: expected %v, got %v", infoSet, strat, reloadedStrat)
		}
	})

	// Solving must be resumable from the reloaded table.
	cfr.NewVanilla(reloaded).Run(root)
	reloaded.Update()
}
