package recommendation

import (
	"crimeChronicles/domain"
	"crimeChronicles/pkg/logger"
)

// ItemFromCase converts a stored case into the engine's typed view.
// A crime_type or tags column that fails to decode becomes an empty set for
// that case only.
func ItemFromCase(c domain.Case) CatalogItem {
	crimeTypes, err := c.CrimeTypes()
	if err != nil {
		logger.Warn("skipping malformed crime_type facet", "case_id", c.ID, err)
		crimeTypes = nil
	}

	tags, err := c.TagList()
	if err != nil {
		logger.Warn("skipping malformed tags facet", "case_id", c.ID, err)
		tags = nil
	}

	return CatalogItem{
		ID:         c.ID,
		Country:    c.Country,
		CrimeTypes: crimeTypes,
		Tags:       tags,
		Year:       c.Year,
		Status:     c.Status,
		Rating:     c.Rating,
	}
}

func ItemsFromCases(cases []domain.Case) []CatalogItem {
	out := make([]CatalogItem, 0, len(cases))
	for _, c := range cases {
		out = append(out, ItemFromCase(c))
	}
	return out
}

func EntriesFromHistory(rows []domain.WatchHistory) []WatchEntry {
	out := make([]WatchEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, WatchEntry{
			ItemID:        r.CaseID,
			Progress:      r.Progress,
			LastWatchedAt: r.LastWatched,
		})
	}
	return out
}
