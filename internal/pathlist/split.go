package pathlist

import "strings"

// Segment is one entry of a path list after trailing-slash stripping.
type Segment struct {
	Raw   string // Text between delimiters
	Value string // Raw without trailing '/'
	Hash  uint   // Hash(Value)
}

// Split breaks raw into segments on delim, keeping empty segments at the
// boundaries and between consecutive delimiters. The hash is rolled while
// scanning and reset at every delimiter; trailing slashes do not contribute.
func Split(raw string, delim byte) []Segment {
	segs := make([]Segment, 0, strings.Count(raw, string(delim))+1)

	start := 0
	h := HashSeed
	kept, keptEnd := HashSeed, 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == delim {
			segs = append(segs, Segment{Raw: raw[start:i], Value: raw[start:keptEnd], Hash: kept})
			start = i + 1
			h = HashSeed
			kept, keptEnd = HashSeed, start
			continue
		}
		h = roll(h, c)
		if c != '/' {
			kept, keptEnd = h, i+1
		}
	}
	segs = append(segs, Segment{Raw: raw[start:], Value: raw[start:keptEnd], Hash: kept})
	return segs
}
