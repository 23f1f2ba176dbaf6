package fa

// Preprocessor maps a raw state observation to a feature vector.
type Preprocessor interface {
	// Transform featurizes a single observation.
	Transform(obs []float64) []float64
	// Size returns the feature vector length for a given observation length.
	Size(obsLen int) int
}

// Identity passes observations through unchanged.
type Identity struct{}

func (Identity) Transform(obs []float64) []float64 { return obs }
func (Identity) Size(obsLen int) int               { return obsLen }

// Polynomial appends element-wise powers of the observation up to Degree,
// plus a bias term. Degree 1 yields [1, x...].
type Polynomial struct {
	Degree int
}

func (p Polynomial) Transform(obs []float64) []float64 {
	features := make([]float64, 0, p.Size(len(obs)))
	features = append(features, 1)
	power := make([]float64, len(obs))
	copy(power, obs)
	for d := 0; d < p.Degree; d++ {
		features = append(features, power...)
		if d+1 < p.Degree {
			for i, x := range obs {
				power[i] *= x
			}
		}
	}
	return features
}

func (p Polynomial) Size(obsLen int) int {
	return 1 + p.Degree*obsLen
}
