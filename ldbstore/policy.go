// Package ldbstore implements a tabular CFR policy table that keeps data
// on disk in a LevelDB database, rather than in memory.
//
// It is substantially slower than an in-memory PolicyTable but can scale
// to games that do not fit in memory.
package ldbstore

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"kuhncfr/cfr"
	"kuhncfr/internal/policy"
)

// PolicyTable implements cfr.StrategyProfile, with policies stored
// gob-encoded in a LevelDB database keyed by information set.
type PolicyTable struct {
	params cfr.Params
	db     *leveldb.DB
	iter   int

	// Policies touched since the last call to Update.
	touched map[string]*policy.Policy
}

var _ cfr.StrategyProfile = &PolicyTable{}

// New creates a PolicyTable backed by the given database.
func New(db *leveldb.DB, params cfr.Params) *PolicyTable {
	return &PolicyTable{
		params:  params,
		db:      db,
		iter:    1,
		touched: make(map[string]*policy.Policy),
	}
}

// Update advances all touched policies and writes them back to the
// database in a single batch.
func (pt *PolicyTable) Update() {
	glog.V(1).Infof("Flushing %d policies to disk", len(pt.touched))
	batch := new(leveldb.Batch)
	for key, np := range pt.touched {
		np.NextStrategy()
		buf, err := np.GobEncode()
		if err != nil {
			panic(errors.Wrapf(err, "ldbstore: failed to encode policy for %v", key))
		}

		batch.Put([]byte(key), buf)
	}

	if err := pt.db.Write(batch, nil); err != nil {
		panic(errors.Wrap(err, "ldbstore: failed to write policies"))
	}

	pt.touched = make(map[string]*policy.Policy)
	pt.iter++
}

func (pt *PolicyTable) Iter() int {
	return pt.iter
}

// Close closes the underlying database.
func (pt *PolicyTable) Close() error {
	return pt.db.Close()
}

// GetPolicy implements cfr.StrategyProfile.
func (pt *PolicyTable) GetPolicy(node cfr.GameTreeNode) cfr.NodePolicy {
	key := node.InfoSet(node.Player()).Key()
	np, ok := pt.touched[key]
	if !ok {
		np = pt.lookup(key)
		if np == nil {
			np = policy.New(node.NumChildren())
		} else if np.NumActions() != node.NumChildren() {
			panic(errors.Errorf("ldbstore: policy has n_actions=%v but node has n_children=%v: %v",
				np.NumActions(), node.NumChildren(), node))
		}

		pt.touched[key] = np
	}

	return np
}

// GetStrategy returns the average strategy for the given information set
// key, or nil if the information set has never been visited.
func (pt *PolicyTable) GetStrategy(infoSet string) []float32 {
	np, ok := pt.touched[infoSet]
	if !ok {
		np = pt.lookup(infoSet)
	}

	if np == nil {
		return nil
	}

	return np.GetAverageStrategy(pt.params.PurificationThreshold)
}

// lookup loads a policy from the database, or returns nil if the key has
// never been stored. Store faults are fatal: the table is inconsistent if
// part of it cannot be read back.
func (pt *PolicyTable) lookup(key string) *policy.Policy {
	buf, err := pt.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil
	} else if err != nil {
		panic(errors.Wrapf(err, "ldbstore: failed to load policy for %v", key))
	}

	np := &policy.Policy{}
	if err := np.GobDecode(buf); err != nil {
		panic(errors.Wrapf(err, "ldbstore: failed to decode policy for %v", key))
	}

	return np
}
