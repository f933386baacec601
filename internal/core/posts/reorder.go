package posts

// reorderByRank projects the unordered detail map back onto the rank-query
// order. Identifiers absent from the map were soft-deleted between the two
// fetch phases and are dropped silently; the output is always a subsequence
// of the ranked identifier list.
func reorderByRank(ranked []RankedPost, details map[int64]*PostDetail) []*PostDetail {
	ordered := make([]*PostDetail, 0, len(ranked))
	for _, rp := range ranked {
		if detail, ok := details[rp.ID]; ok {
			ordered = append(ordered, detail)
		}
	}
	return ordered
}
