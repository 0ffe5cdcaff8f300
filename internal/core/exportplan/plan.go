// Package exportplan turns an ordered clip selection into render descriptors.
package exportplan

// TrailingPaddingSeconds is added to the final clip's duration so the cut
// has breathing room before the end of the render.
const TrailingPaddingSeconds = 1.0

// Clip is a resolved clip in timeline order.
type Clip struct {
	InputVideo string
	Start      float64
	End        float64
	BeatType   string
}

// Descriptor is one entry of the ordered render request.
type Descriptor struct {
	InputVideo string  `json:"inputVideo"`
	StartTime  float64 `json:"startTime"`
	Duration   float64 `json:"duration"`
	BeatType   string  `json:"beatType"`
}

// Build computes render durations for an ordered clip sequence.
// Every clip's duration is end-start; the last clip additionally gets
// TrailingPaddingSeconds.
func Build(clips []Clip) []Descriptor {
	descriptors := make([]Descriptor, len(clips))
	for i, c := range clips {
		d := Descriptor{
			InputVideo: c.InputVideo,
			StartTime:  c.Start,
			Duration:   c.End - c.Start,
			BeatType:   c.BeatType,
		}
		if i == len(clips)-1 {
			d.Duration += TrailingPaddingSeconds
		}
		descriptors[i] = d
	}
	return descriptors
}
