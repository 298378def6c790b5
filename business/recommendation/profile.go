package recommendation

// BuildProfile accumulates preference weights from watched items ordered most recent first.
//
// Entry i of n contributes (n - i) * completionMultiplier(progress) to the item's
// country, to each of its crime types and to each of its tags. Facet emphasis is
// applied later by the scorer, so every facet receives the same weight here.
func BuildProfile(watched []WatchedItem, w Weights) Profile {
	p := NewProfile()
	n := len(watched)

	for i, wi := range watched {
		recency := float64(n - i)
		weight := recency * w.completionMultiplier(wi.Progress)

		if wi.Item.Country != "" {
			p.Countries[wi.Item.Country] += weight
		}
		for _, ct := range wi.Item.CrimeTypes {
			p.CrimeTypes[ct] += weight
		}
		for _, tag := range wi.Item.Tags {
			p.Tags[tag] += weight
		}
	}

	return p
}
