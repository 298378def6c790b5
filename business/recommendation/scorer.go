package recommendation

import "sort"

// ScoreCandidates scores every catalog item not in watched and returns them by
// descending score. Equal scores keep catalog order. Duplicate ids after the
// first occurrence are ignored.
func ScoreCandidates(p Profile, catalog []CatalogItem, watched map[string]struct{}, w Weights) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(catalog))
	seen := make(map[string]struct{}, len(catalog))

	for _, item := range catalog {
		if _, ok := watched[item.ID]; ok {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		b := breakdown(p, item, w)
		out = append(out, ScoredCandidate{
			Item:      item,
			Score:     b.Total(),
			Breakdown: b,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

func breakdown(p Profile, item CatalogItem, w Weights) Breakdown {
	var b Breakdown

	if item.Country != "" {
		b.Country = p.Countries[item.Country] * w.Country
	}
	for _, ct := range item.CrimeTypes {
		b.CrimeType += p.CrimeTypes[ct] * w.CrimeType
	}
	for _, tag := range item.Tags {
		b.Tag += p.Tags[tag] * w.Tag
	}
	b.Rating = item.Rating * w.Rating

	return b
}
