package services

import (
	"sort"

	"bolao/domain/entities"
)

// RecalculateHits returns copies of players whose combinations carry the
// number of their numbers present in the union of every draw. Inputs are
// left untouched and draw order does not matter.
func RecalculateHits(draws []*entities.DailyDraw, players []*entities.Player) []*entities.Player {
	drawn := DrawnNumbers(draws)

	recalculated := make([]*entities.Player, 0, len(players))
	for _, player := range players {
		if player == nil {
			continue
		}

		updated := *player
		updated.Combinations = make([]*entities.Combination, len(player.Combinations))
		for i, combination := range player.Combinations {
			c := *combination
			c.Numbers = append([]int(nil), combination.Numbers...)
			c.Hits = countHits(c.Numbers, drawn)
			updated.Combinations[i] = &c
		}

		recalculated = append(recalculated, &updated)
	}

	return recalculated
}

// DrawnNumbers returns the set of every number that appeared in any draw
func DrawnNumbers(draws []*entities.DailyDraw) map[int]struct{} {
	drawn := make(map[int]struct{})
	for _, draw := range draws {
		if draw == nil {
			continue
		}
		for _, n := range draw.Numbers {
			drawn[n] = struct{}{}
		}
	}
	return drawn
}

// SortedNumbers returns the members of a number set in ascending order
func SortedNumbers(set map[int]struct{}) []int {
	numbers := make([]int, 0, len(set))
	for n := range set {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

func countHits(numbers []int, drawn map[int]struct{}) int {
	hits := 0
	for _, n := range numbers {
		if _, ok := drawn[n]; ok {
			hits++
		}
	}
	return hits
}

// missingNumbers returns the numbers of a combination not drawn yet
func missingNumbers(numbers []int, drawn map[int]struct{}) []int {
	missing := []int{}
	for _, n := range numbers {
		if _, ok := drawn[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// changedHits returns the hit counts that differ between the stored and recalculated players
func changedHits(before, after []*entities.Player) map[int64]int {
	stored := make(map[int64]int)
	for _, player := range before {
		if player == nil {
			continue
		}
		for _, c := range player.Combinations {
			stored[c.ID] = c.Hits
		}
	}

	changed := make(map[int64]int)
	for _, player := range after {
		for _, c := range player.Combinations {
			if old, ok := stored[c.ID]; !ok || old != c.Hits {
				changed[c.ID] = c.Hits
			}
		}
	}
	return changed
}
