package tournament

import "fmt"

// Pair builds the next round from standings already ranked by wins.
// Consecutive entries play each other: (0,1), (2,3), and so on.
func Pair(standings []Standing) ([]Pairing, error) {
	if len(standings)%2 != 0 {
		return nil, fmt.Errorf("%w: have %d", ErrOddPlayerCount, len(standings))
	}

	pairings := make([]Pairing, 0, len(standings)/2)
	for i := 0; i < len(standings); i += 2 {
		a, b := standings[i], standings[i+1]
		pairings = append(pairings, Pairing{
			ID1:   a.ID,
			Name1: a.Name,
			ID2:   b.ID,
			Name2: b.Name,
		})
	}
	return pairings, nil
}
