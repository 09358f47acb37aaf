package services

// ItemInput is the client-submitted cart line shape.
type ItemInput struct {
	ProductID int64 `json:"productId"`
	Count     int   `json:"count"`
}

// ConsolidateItems merges duplicate product entries into one entry per
// product id, summing counts. The order of first occurrence is preserved.
// Entries are assumed well-formed; callers validate before consolidating.
func ConsolidateItems(items []ItemInput) []ItemInput {
	out := make([]ItemInput, 0, len(items))
	seen := make(map[int64]int, len(items))

	for _, it := range items {
		if i, ok := seen[it.ProductID]; ok {
			out[i].Count += it.Count
			continue
		}
		seen[it.ProductID] = len(out)
		out = append(out, it)
	}

	return out
}
