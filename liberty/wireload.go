package liberty

// Wireload is an area-binned RC model: a fanout-length function plus a
// per-unit-length capacitance/resistance pair, looked up by net fanout.
type Wireload struct {
	name         string
	resistance   float64
	capacitance  float64
	slope        float64
	fanoutLength map[int]float64 // fanout -> added length
}

func NewWireload(name string, resistance, capacitance, slope float64) *Wireload {
	return &Wireload{name: name, resistance: resistance, capacitance: capacitance, slope: slope, fanoutLength: make(map[int]float64)}
}

func (w *Wireload) Name() string        { return w.name }
func (w *Wireload) Resistance() float64 { return w.resistance }
func (w *Wireload) Capacitance() float64 { return w.capacitance }
func (w *Wireload) Slope() float64      { return w.slope }

func (w *Wireload) SetFanoutLength(fanout int, length float64) { w.fanoutLength[fanout] = length }

// Length returns the wireload's fanout_length table value for fanout, or
// fanout*slope for any fanout with no table entry, including fanouts
// between recorded ones (no interpolation is done).
func (w *Wireload) Length(fanout int) float64 {
	if l, ok := w.fanoutLength[fanout]; ok {
		return l
	}
	return float64(fanout) * w.slope
}

// wireloadRange is one (min_area, max_area) -> Wireload bucket in a
// WireloadSelection's sorted sequence.
type wireloadRange struct {
	minArea, maxArea float64
	wireload         *Wireload
}

// WireloadSelection is a sorted-by-area sequence of Wireload buckets.
type WireloadSelection struct {
	name   string
	ranges []wireloadRange
}

func NewWireloadSelection(name string) *WireloadSelection {
	return &WireloadSelection{name: name}
}

func (s *WireloadSelection) Name() string { return s.name }

// AddRange appends a (minArea, maxArea, wireload) bucket. Buckets must be
// added in ascending area order, matching how the Liberty reader encounters
// them in the wire_load_selection group.
func (s *WireloadSelection) AddRange(minArea, maxArea float64, w *Wireload) {
	s.ranges = append(s.ranges, wireloadRange{minArea, maxArea, w})
}

// Find returns the wireload for the given cell area: the first bucket
// whose [minArea,maxArea] range contains area; below the first bucket's
// minimum returns the first bucket; above the last bucket's maximum
// returns the last bucket.
func (s *WireloadSelection) Find(area float64) *Wireload {
	if len(s.ranges) == 0 {
		return nil
	}
	if area < s.ranges[0].minArea {
		return s.ranges[0].wireload
	}
	for _, r := range s.ranges {
		if area >= r.minArea && area <= r.maxArea {
			return r.wireload
		}
	}
	return s.ranges[len(s.ranges)-1].wireload
}
