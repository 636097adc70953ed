package services

import (
	"testing"

	"bolao/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateHits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		draws    []*entities.DailyDraw
		players  []*entities.Player
		wantHits map[int64]int
	}{
		{
			name:     "no draws means no hits",
			players:  []*entities.Player{createTestPlayer(1, "Ana", []int{10, 20, 30, 40, 50, 60})},
			wantHits: map[int64]int{100: 0},
		},
		{
			name:     "partial hits after first draw",
			draws:    []*entities.DailyDraw{createTestDraw(1, 1, 1, 2, 3)},
			players:  []*entities.Player{createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6})},
			wantHits: map[int64]int{100: 3},
		},
		{
			name: "union across draws reaches six",
			draws: []*entities.DailyDraw{
				createTestDraw(1, 1, 1, 2, 3),
				createTestDraw(2, 2, 4, 5, 6, 7),
			},
			players:  []*entities.Player{createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6})},
			wantHits: map[int64]int{100: 6},
		},
		{
			name:  "repeated numbers across draws count once",
			draws: []*entities.DailyDraw{createTestDraw(1, 1, 1, 2), createTestDraw(2, 2, 2, 1)},
			players: []*entities.Player{
				createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6}),
			},
			wantHits: map[int64]int{100: 2},
		},
		{
			name:  "shared number counts for each player independently",
			draws: []*entities.DailyDraw{createTestDraw(1, 1, 7)},
			players: []*entities.Player{
				createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 7}),
				createTestPlayer(2, "Bia", []int{7, 11, 12, 13, 14, 15}, []int{21, 22, 23, 24, 25, 26}),
			},
			wantHits: map[int64]int{100: 1, 200: 1, 201: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := RecalculateHits(tt.draws, tt.players)
			assert.Equal(t, tt.wantHits, hitsOf(got))
		})
	}
}

func TestRecalculateHits_EmptyPlayers(t *testing.T) {
	t.Parallel()

	got := RecalculateHits([]*entities.DailyDraw{createTestDraw(1, 1, 1)}, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecalculateHits_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	player := createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6})
	player.Combinations[0].Hits = 2
	draws := []*entities.DailyDraw{createTestDraw(1, 1, 1, 2, 3, 4)}

	got := RecalculateHits(draws, []*entities.Player{player})

	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Combinations[0].Hits)
	assert.Equal(t, 2, player.Combinations[0].Hits)
	assert.NotSame(t, player, got[0])
	assert.NotSame(t, player.Combinations[0], got[0].Combinations[0])
	assert.Equal(t, player.Combinations[0].Numbers, got[0].Combinations[0].Numbers)
	assert.Equal(t, player.Combinations[0].ID, got[0].Combinations[0].ID)
	assert.Equal(t, "Ana", got[0].Name)
}

func TestRecalculateHits_Idempotent(t *testing.T) {
	t.Parallel()

	draws := []*entities.DailyDraw{createTestDraw(1, 1, 5, 9, 33), createTestDraw(2, 2, 41, 60)}
	players := []*entities.Player{
		createTestPlayer(1, "Ana", []int{5, 9, 12, 33, 41, 70}),
		createTestPlayer(2, "Bia", []int{1, 2, 3, 4, 60, 80}),
	}

	first := RecalculateHits(draws, players)
	second := RecalculateHits(draws, players)
	assert.Equal(t, hitsOf(first), hitsOf(second))

	// Feeding the output back in changes nothing either
	third := RecalculateHits(draws, first)
	assert.Equal(t, hitsOf(first), hitsOf(third))
}

func TestRecalculateHits_AddingDrawNeverDecreasesHits(t *testing.T) {
	t.Parallel()

	players := []*entities.Player{
		createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6}, []int{7, 8, 9, 10, 11, 12}),
		createTestPlayer(2, "Bia", []int{13, 14, 15, 16, 17, 18}),
	}
	history := []*entities.DailyDraw{
		createTestDraw(1, 1, 1, 8, 13),
		createTestDraw(2, 2, 2, 9),
		createTestDraw(3, 3, 14, 15, 16),
		createTestDraw(4, 4, 1, 2, 80),
	}

	previous := hitsOf(RecalculateHits(nil, players))
	for i := range history {
		current := hitsOf(RecalculateHits(history[:i+1], players))
		for id, hits := range current {
			assert.GreaterOrEqual(t, hits, previous[id], "combination %d after draw %d", id, i+1)
		}
		previous = current
	}
}

func TestRecalculateHits_DrawOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	players := []*entities.Player{
		createTestPlayer(1, "Ana", []int{3, 6, 9, 12, 15, 18}),
		createTestPlayer(2, "Bia", []int{2, 4, 6, 8, 10, 12}),
	}
	a := createTestDraw(1, 1, 3, 4, 5)
	b := createTestDraw(2, 2, 6, 8)
	c := createTestDraw(3, 3, 12, 15, 18)

	want := hitsOf(RecalculateHits([]*entities.DailyDraw{a, b, c}, players))
	permutations := [][]*entities.DailyDraw{
		{a, c, b},
		{b, a, c},
		{b, c, a},
		{c, a, b},
		{c, b, a},
	}
	for _, draws := range permutations {
		assert.Equal(t, want, hitsOf(RecalculateHits(draws, players)))
	}
}

func TestDrawnNumbers(t *testing.T) {
	t.Parallel()

	draws := []*entities.DailyDraw{createTestDraw(1, 1, 9, 3), createTestDraw(2, 2, 3, 1), nil}

	assert.Equal(t, []int{1, 3, 9}, SortedNumbers(DrawnNumbers(draws)))
	assert.Empty(t, SortedNumbers(DrawnNumbers(nil)))
}

func TestChangedHits(t *testing.T) {
	t.Parallel()

	before := []*entities.Player{createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6}, []int{7, 8, 9, 10, 11, 12})}
	before[0].Combinations[0].Hits = 1

	after := RecalculateHits([]*entities.DailyDraw{createTestDraw(1, 1, 1)}, before)
	assert.Empty(t, changedHits(before, after))

	after = RecalculateHits([]*entities.DailyDraw{createTestDraw(1, 1, 1, 7)}, before)
	assert.Equal(t, map[int64]int{101: 1}, changedHits(before, after))
}
