package liberty

import "github.com/opensta-go/opensta/units"

// ScaleFactors is a named `[ScaleFactorType][ScaleFactorPvt][RiseFall]`
// table of derating coefficients `k`. scale() combines them against a Pvt
// operating point and a nominal baseline as
// `product over {process,volt,temp} of (1 + k*(pvt_value - nominal))`,
// defaulting to 1.0 wherever no coefficient was read.
type ScaleFactors struct {
	name string
	k    map[scaleFactorKey]float64

	nominalProcess     float64
	nominalVoltage     float64
	nominalTemperature float64
}

type scaleFactorKey struct {
	t  *units.ScaleFactorType
	sf *units.ScaleFactorPvt
	rf *units.RiseFall
}

// NewScaleFactors creates a named, empty ScaleFactors set with the given
// nominal PVT baseline (the operating_conditions this library derates
// against).
func NewScaleFactors(name string, nominalProcess, nominalVoltage, nominalTemperature float64) *ScaleFactors {
	return &ScaleFactors{
		name:               name,
		k:                  make(map[scaleFactorKey]float64),
		nominalProcess:     nominalProcess,
		nominalVoltage:     nominalVoltage,
		nominalTemperature: nominalTemperature,
	}
}

func (s *ScaleFactors) Name() string { return s.name }

// SetK stores the derating coefficient for (type, pvt-axis, rf). rf may be
// nil for scale-factor types without a rise/fall suffix.
func (s *ScaleFactors) SetK(t *units.ScaleFactorType, pvtAxis *units.ScaleFactorPvt, rf *units.RiseFall, k float64) {
	s.k[scaleFactorKey{t, pvtAxis, rf}] = k
}

func (s *ScaleFactors) k_(t *units.ScaleFactorType, pvtAxis *units.ScaleFactorPvt, rf *units.RiseFall) (float64, bool) {
	v, ok := s.k[scaleFactorKey{t, pvtAxis, rf}]
	return v, ok
}

// Scale computes the combined scale factor for scaleFactorType and rf at
// pvt's operating point.
func (s *ScaleFactors) Scale(t *units.ScaleFactorType, rf *units.RiseFall, pvt *Pvt) float64 {
	result := 1.0
	if k, ok := s.k_(t, units.ScaleFactorPvtProcess(), rf); ok {
		result *= 1 + k*(pvt.Process()-s.nominalProcess)
	}
	if k, ok := s.k_(t, units.ScaleFactorPvtVolt(), rf); ok {
		result *= 1 + k*(pvt.Voltage()-s.nominalVoltage)
	}
	if k, ok := s.k_(t, units.ScaleFactorPvtTemp(), rf); ok {
		result *= 1 + k*(pvt.Temperature()-s.nominalTemperature)
	}
	return result
}
