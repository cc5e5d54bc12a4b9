package pathlist

// SeenSet remembers accepted segments for one normalization run.
// Lookups go through the hash first and fall back to string comparison
// inside the bucket, so colliding hashes never merge distinct segments.
type SeenSet struct {
	buckets map[uint][]seenEntry
	size    int
}

type seenEntry struct {
	value string
	index int
}

// NewSeenSet returns an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{buckets: make(map[uint][]seenEntry)}
}

// Lookup returns the index recorded for value, if present.
func (s *SeenSet) Lookup(value string, hash uint) (int, bool) {
	for _, e := range s.buckets[hash] {
		if e.value == value {
			return e.index, true
		}
	}
	return -1, false
}

// Insert records value at index unless it is already present. It returns the
// index of the earlier occurrence and true when value was already seen.
func (s *SeenSet) Insert(value string, hash uint, index int) (int, bool) {
	if first, ok := s.Lookup(value, hash); ok {
		return first, true
	}
	s.buckets[hash] = append(s.buckets[hash], seenEntry{value: value, index: index})
	s.size++
	return -1, false
}

// Len is the number of distinct segments recorded.
func (s *SeenSet) Len() int {
	return s.size
}
