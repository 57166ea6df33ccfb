package cfr

const defaultPurificationThreshold = 1e-3

// Params are the configuration options for strategy averaging.
// The zero value is valid and performs no purification.
type Params struct {
	// Strategy probabilities below this value will be set to zero and the
	// remaining probabilities renormalized when computing the average
	// strategy. This removes near-zero noise actions attributable to
	// floating-point drift rather than genuine mixed-strategy support.
	PurificationThreshold float32
}

// DefaultParams returns the Params used by the solver drivers.
func DefaultParams() Params {
	return Params{PurificationThreshold: defaultPurificationThreshold}
}
