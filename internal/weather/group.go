package weather

// UnknownDateKey collects entries whose timestamp cannot be resolved.
const UnknownDateKey = "Unknown date"

// GroupByLocalDate partitions entries into buckets keyed by local calendar
// date. Groups appear in first-seen order and entries keep their relative
// order within a group. The result is recomputed on every call.
func GroupByLocalDate(entries []Entry, offsetSeconds int) []DateGroup {
	if len(entries) == 0 {
		return []DateGroup{}
	}

	groups := make([]DateGroup, 0, 6)
	index := make(map[string]int)

	for _, e := range entries {
		key := UnknownDateKey
		if local, err := EntryLocalTime(e, offsetSeconds); err == nil {
			key = DateKey(local)
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Key: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	return groups
}
