package recommendation

import "errors"

// Weights controls both profile accumulation and candidate scoring.
type Weights struct {
	Country   float64
	CrimeType float64
	Tag       float64
	Rating    float64

	// completion multipliers: progress > HighThreshold uses CompletionHigh,
	// progress > MidThreshold uses CompletionMid, anything else counts once.
	CompletionHigh float64
	CompletionMid  float64
	HighThreshold  int
	MidThreshold   int
}

const (
	defaultCountryWeight   = 2.0
	defaultCrimeTypeWeight = 3.0
	defaultTagWeight       = 1.5
	defaultRatingWeight    = 0.5
	defaultCompletionHigh  = 1.5
	defaultCompletionMid   = 1.2
	defaultHighThreshold   = 50
	defaultMidThreshold    = 20
)

func DefaultWeights() Weights {
	return Weights{
		Country:   defaultCountryWeight,
		CrimeType: defaultCrimeTypeWeight,
		Tag:       defaultTagWeight,
		Rating:    defaultRatingWeight,

		CompletionHigh: defaultCompletionHigh,
		CompletionMid:  defaultCompletionMid,
		HighThreshold:  defaultHighThreshold,
		MidThreshold:   defaultMidThreshold,
	}
}

var (
	ErrFacetOrder      = errors.New("weights must satisfy crime_type > country > tag > rating > 0")
	ErrCompletionOrder = errors.New("completion multipliers must satisfy completion_high >= completion_mid >= 1")
	ErrThresholdOrder  = errors.New("thresholds must satisfy 0 <= mid_threshold < high_threshold <= 100")
)

// Validate checks the relative ordering the ranking depends on.
func (w Weights) Validate() error {
	if !(w.CrimeType > w.Country && w.Country > w.Tag && w.Tag > w.Rating && w.Rating > 0) {
		return ErrFacetOrder
	}
	if !(w.CompletionHigh >= w.CompletionMid && w.CompletionMid >= 1) {
		return ErrCompletionOrder
	}
	if !(w.MidThreshold >= 0 && w.MidThreshold < w.HighThreshold && w.HighThreshold <= 100) {
		return ErrThresholdOrder
	}
	return nil
}

func (w Weights) completionMultiplier(progress int) float64 {
	switch {
	case progress > w.HighThreshold:
		return w.CompletionHigh
	case progress > w.MidThreshold:
		return w.CompletionMid
	default:
		return 1.0
	}
}
