package recommendation

import "time"

// CatalogItem is the typed view of a case that the engine scores.
// Facet collections are already decoded; the engine never parses JSON.
type CatalogItem struct {
	ID         string
	Country    string
	CrimeTypes []string
	Tags       []string
	Year       int
	Status     string
	Rating     float64
}

// WatchEntry is one row of a viewer's watch history as the history provider returns it.
type WatchEntry struct {
	ItemID        string
	Progress      int
	LastWatchedAt time.Time
}

// WatchedItem is a history entry resolved to its catalog item.
type WatchedItem struct {
	Item     CatalogItem
	Progress int
}

// Profile holds accumulated preference weights per facet value.
// A value missing from a map weighs 0.
type Profile struct {
	Countries  map[string]float64 `json:"countries"`
	CrimeTypes map[string]float64 `json:"crime_types"`
	Tags       map[string]float64 `json:"tags"`
}

func NewProfile() Profile {
	return Profile{
		Countries:  map[string]float64{},
		CrimeTypes: map[string]float64{},
		Tags:       map[string]float64{},
	}
}

func (p Profile) IsEmpty() bool {
	return len(p.Countries) == 0 && len(p.CrimeTypes) == 0 && len(p.Tags) == 0
}

// Breakdown splits a candidate score into its facet contributions.
type Breakdown struct {
	Country   float64
	CrimeType float64
	Tag       float64
	Rating    float64
}

func (b Breakdown) Total() float64 {
	return b.Country + b.CrimeType + b.Tag + b.Rating
}

type ScoredCandidate struct {
	Item      CatalogItem
	Score     float64
	Breakdown Breakdown
}

// Ranked is one entry of a final recommendation list.
type Ranked struct {
	ScoredCandidate
	// Padded marks entries appended by the popularity fallback.
	Padded bool
}

type Result struct {
	Ranked    []Ranked
	ColdStart bool
	// Degraded is set when the pass was abandoned and an empty list returned.
	Degraded bool
}

// Items returns the catalog items of the result in rank order.
func (r Result) Items() []CatalogItem {
	out := make([]CatalogItem, 0, len(r.Ranked))
	for _, rk := range r.Ranked {
		out = append(out, rk.Item)
	}
	return out
}

// PaddedCount is the number of entries added by the popularity fallback.
func (r Result) PaddedCount() int {
	n := 0
	for _, rk := range r.Ranked {
		if rk.Padded {
			n++
		}
	}
	return n
}
