package pathlist

// HashSeed is the DJB2 starting value.
const HashSeed uint = 5381

// Hash computes the DJB2 hash (h = h*33 + c) of s over its bytes.
// The result wraps at the native uint width.
func Hash(s string) uint {
	h := HashSeed
	for i := 0; i < len(s); i++ {
		h = roll(h, s[i])
	}
	return h
}

func roll(h uint, c byte) uint {
	return (h << 5) + h + uint(c)
}
