package biometric

// Verifier checks a captured fingerprint sample.
// Real biometric matching is out of scope; SimulatedVerifier stands in until a
// hardware-backed implementation is plugged in.
type Verifier interface {
	// Verify reports whether the sample passes verification.
	// It returns an error only on infrastructure failure, never on mismatch.
	Verify(sample []byte) (bool, error)
}

// SimulatedVerifier accepts any sample longer than MinSampleLen bytes.
type SimulatedVerifier struct {
	MinSampleLen int
}

var _ Verifier = (*SimulatedVerifier)(nil)

func NewSimulatedVerifier() *SimulatedVerifier {
	return &SimulatedVerifier{MinSampleLen: 10}
}

func (v *SimulatedVerifier) Verify(sample []byte) (bool, error) {
	return len(sample) > v.MinSampleLen, nil
}
