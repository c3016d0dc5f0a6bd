package recon

// keyIndex maps a normalized identifier to the positions of the records
// sharing it, in input order. Multiple records may legitimately share a
// key (amended documents), so values are slices, not single positions.
type keyIndex map[string][]int

// buildIndex builds a keyIndex over records using the given key
// selector. Records whose selected key normalizes to empty are not
// indexed. Build cost is O(n); lookups are O(1) average.
func buildIndex(records []LedgerRecord, selector func(LedgerRecord) string) keyIndex {
	idx := make(keyIndex, len(records))
	for i, rec := range records {
		key := NormalizeKey(selector(rec))
		if key == "" {
			continue
		}
		idx[key] = append(idx[key], i)
	}
	return idx
}

// lookup returns the index of the first record under key for which the
// taken filter reports false, preserving input order. Returns -1 when
// every candidate is already consumed or the key is unknown.
func (idx keyIndex) lookup(key string, taken func(int) bool) int {
	for _, i := range idx[key] {
		if !taken(i) {
			return i
		}
	}
	return -1
}
