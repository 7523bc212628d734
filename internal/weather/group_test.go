package weather

import (
	"reflect"
	"testing"
)

func entry(dt int64, text string) Entry {
	return Entry{Dt: dt, TimestampText: text, TemperatureC: 10, Description: "clear sky"}
}

func TestGroupByLocalDate_Empty(t *testing.T) {
	groups := GroupByLocalDate(nil, 3600)
	if groups == nil || len(groups) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", groups)
	}
}

func TestGroupByLocalDate_OrderAndSizes(t *testing.T) {
	entries := []Entry{
		entry(1, "2024-01-01 12:00:00"),
		entry(2, "2024-01-01 15:00:00"),
		entry(3, "2024-01-02 12:00:00"),
	}

	groups := GroupByLocalDate(entries, 0)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "Mon Jan 01 2024" || groups[1].Key != "Tue Jan 02 2024" {
		t.Errorf("unexpected keys: %q, %q", groups[0].Key, groups[1].Key)
	}
	if len(groups[0].Entries) != 2 || len(groups[1].Entries) != 1 {
		t.Errorf("expected sizes [2,1], got [%d,%d]", len(groups[0].Entries), len(groups[1].Entries))
	}
}

func TestGroupByLocalDate_CrossMidnightBoundary(t *testing.T) {
	entries := []Entry{
		entry(1, "2024-01-01 21:00:00"),
		entry(2, "2024-01-01 23:00:00"),
	}

	groups := GroupByLocalDate(entries, 7200)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "Mon Jan 01 2024" || groups[0].Entries[0].Dt != 1 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].Key != "Tue Jan 02 2024" || groups[1].Entries[0].Dt != 2 {
		t.Errorf("second group = %+v", groups[1])
	}
}

func TestGroupByLocalDate_IsStablePartition(t *testing.T) {
	entries := []Entry{
		entry(1, "2024-03-01 00:00:00"),
		entry(2, "2024-03-01 03:00:00"),
		entry(3, "2024-03-01 21:00:00"),
		entry(4, "2024-03-02 00:00:00"),
		entry(5, "2024-03-02 09:00:00"),
		entry(6, "2024-03-02 22:00:00"),
		entry(7, "2024-03-03 06:00:00"),
	}

	for _, offset := range []int{-36000, -3600, 0, 3600, 19800, 50400} {
		groups := GroupByLocalDate(entries, offset)

		var flat []Entry
		seen := make(map[string]bool)
		for _, g := range groups {
			if seen[g.Key] {
				t.Fatalf("offset %d: duplicate group %q", offset, g.Key)
			}
			seen[g.Key] = true
			for _, e := range g.Entries {
				local, err := EntryLocalTime(e, offset)
				if err != nil {
					t.Fatalf("offset %d: unexpected error: %v", offset, err)
				}
				if DateKey(local) != g.Key {
					t.Errorf("offset %d: entry %d in group %q", offset, e.Dt, g.Key)
				}
			}
			flat = append(flat, g.Entries...)
		}

		// Entries are chronological, so a stable partition equals the input.
		if !reflect.DeepEqual(flat, entries) {
			t.Errorf("offset %d: concatenated groups differ from input", offset)
		}
	}
}

func TestGroupByLocalDate_UnparseableEntries(t *testing.T) {
	entries := []Entry{
		entry(0, "???"),
		entry(1, "2024-01-01 12:00:00"),
	}

	groups := GroupByLocalDate(entries, 0)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != UnknownDateKey {
		t.Errorf("expected %q first, got %q", UnknownDateKey, groups[0].Key)
	}
}
