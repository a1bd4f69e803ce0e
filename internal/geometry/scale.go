package geometry

// Scale is a linear map from one interval onto another.
type Scale struct {
	inMin  float64
	inMax  float64
	outMin float64
	outMax float64
}

func NewScale(inMin, inMax, outMin, outMax float64) Scale {
	return Scale{inMin: inMin, inMax: inMax, outMin: outMin, outMax: outMax}
}

func (s Scale) Scale(v float64) float64 {
	if s.inMax == s.inMin {
		return s.outMin
	}
	return s.outMin + (v-s.inMin)*(s.outMax-s.outMin)/(s.inMax-s.inMin)
}

func (s Scale) Inside(v float64) bool {
	return v >= s.inMin && v <= s.inMax
}

func (s Scale) InRange() (float64, float64)  { return s.inMin, s.inMax }
func (s Scale) OutRange() (float64, float64) { return s.outMin, s.outMax }
