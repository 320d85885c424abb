package rod

// View derives the rod diagram for the moment (i, j) given the current cut
// array s. With a committed cut for i it walks the decomposition; otherwise
// it shows the pair under comparison, or the whole rod when j is 0.
func View(i, j int, s []int) RodView {
	if i <= 0 {
		return RodView{}
	}

	v := RodView{HasRod: true, Length: i}
	switch {
	case i < len(s) && s[i] > 0:
		v.Pieces, _ = walk(s, i)
	case j > 0:
		v.Pieces = []int{j}
		if i-j > 0 {
			v.Pieces = append(v.Pieces, i-j)
		}
	default:
		v.Pieces = []int{i}
	}
	return v
}

// Decompose walks s from length down to zero. An unfinished walk appends
// the leftover as a trailing piece, so the pieces always sum to length.
func Decompose(s []int, length int) []int {
	pieces, _ := walk(s, length)
	return pieces
}

// CheckCuts verifies that every prefix of s decomposes cleanly: each cut
// fits the remaining length and the walk ends at zero.
func CheckCuts(s []int) error {
	if len(s) > 0 && s[0] != 0 {
		return &CutError{Length: 0, Remaining: 0, Cut: s[0]}
	}
	for length := 1; length < len(s); length++ {
		if _, err := walk(s, length); err != nil {
			return err
		}
	}
	return nil
}

// walk is bounded by length iterations; a cut that is non-positive or
// larger than what remains stops the walk with a *CutError.
func walk(s []int, length int) ([]int, error) {
	var pieces []int
	remaining := length
	var err error

	for steps := 0; remaining > 0 && steps < length; steps++ {
		if remaining >= len(s) {
			err = &CutError{Length: length, Remaining: remaining}
			break
		}
		cut := s[remaining]
		if cut == 0 {
			break
		}
		if cut < 0 || cut > remaining {
			err = &CutError{Length: length, Remaining: remaining, Cut: cut}
			break
		}
		pieces = append(pieces, cut)
		remaining -= cut
	}

	if remaining > 0 {
		pieces = append(pieces, remaining)
	}
	return pieces, err
}
