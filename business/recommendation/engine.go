package recommendation

import "sort"

// scoreCandidates is swapped in tests to force a failed pass.
var scoreCandidates = ScoreCandidates

// Recommend ranks up to limit unwatched catalog items for a viewer.
//
// With no history the catalog is ranked by popularity (rating). Otherwise a
// profile is built from the history, every unwatched item is scored and the
// top entries are taken; a short list is padded with the most popular
// unwatched items not selected yet. Recommend never panics past its boundary:
// an abandoned pass yields an empty, Degraded result.
func Recommend(history []WatchEntry, catalog []CatalogItem, limit int, w Weights) Result {
	return RecommendExcluding(history, nil, catalog, limit, w)
}

// RecommendExcluding is Recommend with extra watched ids that lie outside the
// history window. They are never returned but do not shape the profile.
func RecommendExcluding(history []WatchEntry, alsoWatched []string, catalog []CatalogItem, limit int, w Weights) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Ranked: []Ranked{}, Degraded: true}
		}
	}()

	if limit <= 0 || len(catalog) == 0 {
		return Result{Ranked: []Ranked{}, ColdStart: len(history) == 0}
	}

	ordered := OrderHistory(history)

	watched := make(map[string]struct{}, len(ordered)+len(alsoWatched))
	for _, e := range ordered {
		watched[e.ItemID] = struct{}{}
	}
	for _, id := range alsoWatched {
		watched[id] = struct{}{}
	}

	if len(ordered) == 0 {
		return Result{Ranked: coldStart(catalog, limit, w, watched), ColdStart: true}
	}

	profile := BuildProfile(ResolveHistory(ordered, catalog), w)
	scored := scoreCandidates(profile, catalog, watched, w)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	ranked := make([]Ranked, 0, limit)
	selected := make(map[string]struct{}, limit)
	for _, sc := range scored {
		ranked = append(ranked, Ranked{ScoredCandidate: sc})
		selected[sc.Item.ID] = struct{}{}
	}

	if len(ranked) < limit {
		ranked = pad(ranked, catalog, limit, w, watched, selected)
	}

	return Result{Ranked: ranked}
}

// OrderHistory sorts entries most recent first and keeps only the most recent
// entry per item. Entries with an empty item id are dropped.
func OrderHistory(history []WatchEntry) []WatchEntry {
	sorted := make([]WatchEntry, 0, len(history))
	for _, e := range history {
		if e.ItemID != "" {
			sorted = append(sorted, e)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastWatchedAt.After(sorted[j].LastWatchedAt)
	})

	out := sorted[:0]
	seen := make(map[string]struct{}, len(sorted))
	for _, e := range sorted {
		if _, ok := seen[e.ItemID]; ok {
			continue
		}
		seen[e.ItemID] = struct{}{}
		out = append(out, e)
	}

	return out
}

// ResolveHistory maps ordered entries to catalog items, dropping entries whose
// item is not in the catalog. Progress is clamped to [0, 100].
func ResolveHistory(ordered []WatchEntry, catalog []CatalogItem) []WatchedItem {
	index := make(map[string]CatalogItem, len(catalog))
	for _, item := range catalog {
		if _, ok := index[item.ID]; !ok {
			index[item.ID] = item
		}
	}

	out := make([]WatchedItem, 0, len(ordered))
	for _, e := range ordered {
		item, ok := index[e.ItemID]
		if !ok {
			continue
		}
		out = append(out, WatchedItem{Item: item, Progress: clampProgress(e.Progress)})
	}

	return out
}

// Popular ranks items by rating, highest first, keeping catalog order on ties
// and skipping excluded and duplicate ids. Popularity is the catalog rating:
// there is no separate view-count signal.
func Popular(catalog []CatalogItem, exclude map[string]struct{}) []CatalogItem {
	out := make([]CatalogItem, 0, len(catalog))
	seen := make(map[string]struct{}, len(catalog))
	for _, item := range catalog {
		if _, ok := exclude[item.ID]; ok {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})

	return out
}

func coldStart(catalog []CatalogItem, limit int, w Weights, exclude map[string]struct{}) []Ranked {
	popular := Popular(catalog, exclude)
	if len(popular) > limit {
		popular = popular[:limit]
	}

	out := make([]Ranked, 0, len(popular))
	for _, item := range popular {
		b := Breakdown{Rating: item.Rating * w.Rating}
		out = append(out, Ranked{ScoredCandidate: ScoredCandidate{Item: item, Score: b.Total(), Breakdown: b}})
	}

	return out
}

func pad(ranked []Ranked, catalog []CatalogItem, limit int, w Weights, watched, selected map[string]struct{}) []Ranked {
	exclude := make(map[string]struct{}, len(watched)+len(selected))
	for id := range watched {
		exclude[id] = struct{}{}
	}
	for id := range selected {
		exclude[id] = struct{}{}
	}

	for _, item := range Popular(catalog, exclude) {
		if len(ranked) >= limit {
			break
		}
		b := Breakdown{Rating: item.Rating * w.Rating}
		ranked = append(ranked, Ranked{
			ScoredCandidate: ScoredCandidate{Item: item, Score: b.Total(), Breakdown: b},
			Padded:          true,
		})
	}

	return ranked
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
