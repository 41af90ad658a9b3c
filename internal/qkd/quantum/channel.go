package quantum

// DefaultMaxFlipProbability caps the channel flip probability so that
// pathological distances never produce an error floor above 10% on their own.
const DefaultMaxFlipProbability = 0.1

// A Link is one stage of the quantum channel between sender and receiver.
// Links compose in transmission order.
type Link interface {
	// Transmit passes one qubit through this stage and returns the qubit that
	// continues downstream.
	Transmit(q Qubit) Qubit
}

// Pipeline composes links in transmission order.
type Pipeline []Link

// Transmit implements Link.
func (p Pipeline) Transmit(q Qubit) Qubit {
	for _, l := range p {
		q = l.Transmit(q)
	}
	return q
}

// NoiseParameters describe the distance-parameterized channel noise model.
type NoiseParameters struct {
	// DistanceKM is the transmission distance in kilometers
	DistanceKM float64
	// NoiseCoefficient scales distance into a mean flip probability
	NoiseCoefficient float64
	// GaussianStdDev adds run-to-run variance around the mean
	GaussianStdDev float64
	// MaxFlipProbability clamps the per-qubit flip probability; zero selects
	// DefaultMaxFlipProbability
	MaxFlipProbability float64
}

// ChannelNoise models per-photon attenuation and decoherence growing with
// transmission distance, as an independent bit-flip applied to each qubit in
// transit.
type ChannelNoise struct {
	params NoiseParameters
	rs     *RandomSource
}

// NewChannelNoise creates a channel noise stage with the given parameters.
func NewChannelNoise(params NoiseParameters, rs *RandomSource) *ChannelNoise {
	if params.MaxFlipProbability == 0 {
		params.MaxFlipProbability = DefaultMaxFlipProbability
	}
	return &ChannelNoise{params: params, rs: rs}
}

// FlipProbability draws the per-qubit flip probability: a Gaussian centered on
// distance × coefficient, clamped to [0, MaxFlipProbability].
func (c *ChannelNoise) FlipProbability() float64 {
	p := c.rs.Gaussian(c.params.DistanceKM*c.params.NoiseCoefficient, c.params.GaussianStdDev)
	if p < 0 {
		return 0
	}
	if p > c.params.MaxFlipProbability {
		return c.params.MaxFlipProbability
	}
	return p
}

// Transmit implements Link. It consumes two draws per qubit, in order: the
// Gaussian flip probability, then the uniform flip decision.
func (c *ChannelNoise) Transmit(q Qubit) Qubit {
	p := c.FlipProbability()
	if c.rs.Float64() < p {
		q.Value = 1 - q.Value
	}
	return q
}

// Eavesdropper performs an intercept-resend attack: each qubit in transit is
// measured in a random interception basis and a fresh qubit, re-encoded in
// that basis, is forwarded in its place. When the interception basis differs
// from the sender's (probability 1/2) the forwarded basis no longer matches
// the sender's, so even a matching-basis measurement by the receiver can
// diverge from the sender's original bit. This is what raises the sifted-key
// error rate under eavesdropping.
type Eavesdropper struct {
	// BasisFunc overrides the interception basis draw; nil means a uniform
	// random basis per qubit.
	BasisFunc func() Basis

	rs *RandomSource
}

// NewEavesdropper creates an intercept-resend stage drawing from rs.
func NewEavesdropper(rs *RandomSource) *Eavesdropper {
	return &Eavesdropper{rs: rs}
}

// Transmit implements Link. It consumes one basis draw per qubit, plus one bit
// draw when the interception basis mismatches the preparation basis.
func (e *Eavesdropper) Transmit(q Qubit) Qubit {
	var basis Basis
	if e.BasisFunc != nil {
		basis = e.BasisFunc()
	} else {
		basis = e.rs.Basis()
	}
	observed := Measure(q, basis, e.rs)
	return PrepareQubit(observed, basis)
}
