package cfr

import (
	"encoding/gob"
	"io"

	"github.com/pkg/errors"

	"kuhncfr/internal/policy"
)

// LoadPolicyTable restores a PolicyTable saved with MarshalTo.
func LoadPolicyTable(r io.Reader) (*PolicyTable, error) {
	dec := gob.NewDecoder(r)
	var params Params
	if err := dec.Decode(&params); err != nil {
		return nil, errors.Wrap(err, "failed to decode params")
	}

	var iter int
	if err := dec.Decode(&iter); err != nil {
		return nil, errors.Wrap(err, "failed to decode iteration count")
	}

	var nPolicies int
	if err := dec.Decode(&nPolicies); err != nil {
		return nil, errors.Wrap(err, "failed to decode number of policies")
	}

	policiesByKey := make(map[string]*policy.Policy, nPolicies)
	for i := 0; i < nPolicies; i++ {
		var key string
		if err := dec.Decode(&key); err != nil {
			return nil, errors.Wrap(err, "failed to decode infoset key")
		}

		var np policy.Policy
		if err := dec.Decode(&np); err != nil {
			return nil, errors.Wrapf(err, "failed to decode policy for %v", key)
		}

		policiesByKey[key] = &np
	}

	return &PolicyTable{
		params:        params,
		iter:          iter,
		policiesByKey: policiesByKey,
		mayNeedUpdate: make(map[*policy.Policy]struct{}),
	}, nil
}

// MarshalTo saves the table so that solving can be resumed or the average
// strategies inspected later.
func (pt *PolicyTable) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(pt.params); err != nil {
		return err
	}

	if err := enc.Encode(pt.iter); err != nil {
		return err
	}

	if err := enc.Encode(len(pt.policiesByKey)); err != nil {
		return err
	}

	for key, np := range pt.policiesByKey {
		if err := enc.Encode(key); err != nil {
			return err
		}

		if err := enc.Encode(np); err != nil {
			return err
		}
	}

	return nil
}
