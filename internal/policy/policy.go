package policy

import (
	"bytes"
	"encoding/gob"

	"kuhncfr/internal/f32"
)

// Policy implements cfr.NodePolicy by keeping a table of
// accumulated regrets and strategies for one information set.
type Policy struct {
	currentStrategy []float32
	reachProb       float32

	regretSum    []float32
	strategySum  []float32
	reachProbSum float32
}

// New returns a new Policy for a game node with the given number of actions.
// The initial strategy is uniform.
func New(nActions int) *Policy {
	return &Policy{
		currentStrategy: uniformDist(nActions),
		reachProb:       0.0,
		regretSum:       make([]float32, nActions),
		strategySum:     make([]float32, nActions),
	}
}

// GetStrategy returns the strategy to use during the current iteration.
// The returned slice must not be modified.
func (p *Policy) GetStrategy() []float32 {
	return p.currentStrategy
}

// AddReachProb accumulates the acting player's probability of reaching this
// information set during the current iteration. An information set may be
// reached along several deal branches within one iteration.
func (p *Policy) AddReachProb(w float32) {
	p.reachProb += w
}

// AddRegret adds the instantaneous regrets observed at a node, weighted by
// the counterfactual probability that the opponent and chance led there.
func (p *Policy) AddRegret(counterfactualP float32, instantaneousRegrets []float32) {
	f32.AxpyUnitary(counterfactualP, instantaneousRegrets, p.regretSum)
}

// NextStrategy folds the completed iteration into the average strategy and
// recomputes the current strategy from the accumulated regrets.
//
// The strategy sum must be weighted by the strategy actually used during the
// iteration just completed, so the fold happens before regret matching.
func (p *Policy) NextStrategy() {
	f32.AxpyUnitary(p.reachProb, p.currentStrategy, p.strategySum)
	p.regretMatching()
	p.reachProbSum += p.reachProb
	p.reachProb = 0.0
}

// GetAverageStrategy returns the time-averaged strategy over all completed
// iterations. Action probabilities below purificationThreshold are zeroed
// and the remaining weights renormalized to sum to 1.
//
// It panics if the information set was never reached during a completed
// iteration: averaging over zero reach is a driver defect, not a strategy.
func (p *Policy) GetAverageStrategy(purificationThreshold float32) []float32 {
	if p.reachProbSum == 0 {
		panic("policy: average strategy of unreached information set")
	}

	avgStrat := make([]float32, len(p.strategySum))
	f32.ScalUnitaryTo(avgStrat, 1.0/p.reachProbSum, p.strategySum)
	for i, x := range avgStrat {
		if x < purificationThreshold {
			avgStrat[i] = 0.0
		}
	}

	f32.ScalUnitary(1.0/f32.Sum(avgStrat), avgStrat)
	return avgStrat
}

func (p *Policy) NumActions() int {
	return len(p.regretSum)
}

func (p *Policy) regretMatching() {
	copy(p.currentStrategy, p.regretSum)
	makePositive(p.currentStrategy)
	total := f32.Sum(p.currentStrategy)
	if total > 0 {
		f32.ScalUnitary(1.0/total, p.currentStrategy)
	} else {
		for i := range p.currentStrategy {
			p.currentStrategy[i] = 1.0 / float32(len(p.currentStrategy))
		}
	}
}

func (p *Policy) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	var nActions int
	if err := dec.Decode(&nActions); err != nil {
		return err
	}

	regretSum := make([]float32, 0, nActions)
	if err := dec.Decode(&regretSum); err != nil {
		return err
	}

	strategySum := make([]float32, 0, nActions)
	if err := dec.Decode(&strategySum); err != nil {
		return err
	}

	var reachProbSum float32
	if err := dec.Decode(&reachProbSum); err != nil {
		return err
	}

	p.regretSum = regretSum
	p.strategySum = strategySum
	p.reachProbSum = reachProbSum
	p.currentStrategy = make([]float32, nActions)
	p.regretMatching()
	return nil
}

func (p *Policy) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(p.NumActions()); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.regretSum); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.strategySum); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.reachProbSum); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func uniformDist(n int) []float32 {
	result := make([]float32, n)
	p := 1.0 / float32(n)
	f32.AddConst(p, result)
	return result
}

func makePositive(v []float32) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0.0
		}
	}
}
