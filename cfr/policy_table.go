package cfr

import (
	"fmt"

	"github.com/golang/glog"

	"kuhncfr/internal/policy"
)

// PolicyTable implements tabular CFR by storing accumulated regrets and
// strategy sums for each information set, which is looked up by its Key().
type PolicyTable struct {
	params Params
	iter   int

	// Map of InfoSet Key -> the policy for that infoset.
	policiesByKey map[string]*policy.Policy
	mayNeedUpdate map[*policy.Policy]struct{}
}

var _ StrategyProfile = &PolicyTable{}

// NewPolicyTable creates a new PolicyTable with the given Params.
func NewPolicyTable(params Params) *PolicyTable {
	return &PolicyTable{
		params:        params,
		iter:          1,
		policiesByKey: make(map[string]*policy.Policy),
		mayNeedUpdate: make(map[*policy.Policy]struct{}),
	}
}

// Update performs regret matching for all policies within this table that
// have been touched since the last call to Update.
func (pt *PolicyTable) Update() {
	glog.V(1).Infof("Updating %d policies", len(pt.mayNeedUpdate))
	for np := range pt.mayNeedUpdate {
		np.NextStrategy()
		delete(pt.mayNeedUpdate, np)
	}

	pt.iter++
}

func (pt *PolicyTable) Iter() int {
	return pt.iter
}

func (pt *PolicyTable) Close() error {
	return nil
}

// GetPolicy implements StrategyProfile.
func (pt *PolicyTable) GetPolicy(node GameTreeNode) NodePolicy {
	key := node.InfoSet(node.Player()).Key()
	np, ok := pt.policiesByKey[key]
	if !ok {
		np = policy.New(node.NumChildren())
		pt.policiesByKey[key] = np
		if len(pt.policiesByKey)%100000 == 0 {
			glog.V(2).Infof("%d infosets", len(pt.policiesByKey))
		}
	} else if np.NumActions() != node.NumChildren() {
		panic(fmt.Errorf("policy has n_actions=%v but node has n_children=%v: %v",
			np.NumActions(), node.NumChildren(), node))
	}

	pt.mayNeedUpdate[np] = struct{}{}
	return np
}

// GetStrategy returns the average strategy for the given information set
// key, or nil if the information set has never been visited.
func (pt *PolicyTable) GetStrategy(infoSet string) []float32 {
	np, ok := pt.policiesByKey[infoSet]
	if !ok {
		return nil
	}

	return np.GetAverageStrategy(pt.params.PurificationThreshold)
}

// Iterate calls visit with the key and average strategy of every
// information set in the table.
func (pt *PolicyTable) Iterate(visit func(key string, avgStrategy []float32)) {
	for key, np := range pt.policiesByKey {
		visit(key, np.GetAverageStrategy(pt.params.PurificationThreshold))
	}
}
