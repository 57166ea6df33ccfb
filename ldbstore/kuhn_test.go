package ldbstore

import (
	"math"
	"testing"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"kuhncfr/cfr"
	"kuhncfr/kuhn"
)

func TestVanilla(t *testing.T) {
	db, err := leveldb.OpenFile(t.TempDir(), &opt.Options{})
	if err != nil {
		t.Fatal(err)
	}

	policy := New(db, cfr.DefaultParams())
	defer policy.Close()

	solver := cfr.NewVanilla(policy)
	expectedValue := runCFR(t, solver, policy, 1000)
	if math.Abs(float64(expectedValue)+1.0/18.0) > 0.02 {
		t.Errorf("expected game value near %.4f, got %.4f", -1.0/18.0, expectedValue)
	}

	// The strategies must be readable back from disk after a flush.
	if strat := policy.GetStrategy("Kb"); strat == nil || strat[1] < 0.95 {
		t.Errorf("expected the King to call a bet, got %v", strat)
	}
}

func BenchmarkVanilla(b *testing.B) {
	db, err := leveldb.OpenFile(b.TempDir(), &opt.Options{})
	if err != nil {
		b.Fatal(err)
	}

	policy := New(db, cfr.DefaultParams())
	defer policy.Close()

	solver := cfr.NewVanilla(policy)
	b.ResetTimer()
	runCFR(b, solver, policy, b.N)
}

type logger interface {
	Logf(string, ...interface{})
}

func runCFR(log logger, solver *cfr.Vanilla, policy *PolicyTable, nIter int) float32 {
	root := kuhn.NewGame()
	var expectedValue float32
	for i := 1; i <= nIter; i++ {
		expectedValue += solver.Run(root)
		policy.Update()
		if nIter/10 > 0 && i%(nIter/10) == 0 {
			log.Logf("[iter=%d] Expected game value: %.4f", i, expectedValue/float32(i))
		}
	}

	return expectedValue / float32(nIter)
}
