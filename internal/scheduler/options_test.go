package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromMap(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		want    Options
		wantErr bool
	}{
		{name: "defaults when empty", raw: nil, want: DefaultOptions()},
		{name: "json numbers", raw: map[string]any{"max_per_day": float64(4), "food_after_slot": float64(2)}, want: Options{MaxPerDay: 4, FoodAfterSlot: 2}},
		{name: "numeric strings", raw: map[string]any{"max_per_day": "5"}, want: Options{MaxPerDay: 5, FoodAfterSlot: 1}},
		{name: "unknown keys ignored", raw: map[string]any{"budget": "cheap", "max_per_day": 2}, want: Options{MaxPerDay: 2, FoodAfterSlot: 1}},
		{name: "zero rejected", raw: map[string]any{"max_per_day": 0}, wantErr: true},
		{name: "negative rejected", raw: map[string]any{"food_after_slot": -2}, wantErr: true},
		{name: "fraction rejected", raw: map[string]any{"max_per_day": 2.5}, wantErr: true},
		{name: "bool rejected", raw: map[string]any{"max_per_day": true}, wantErr: true},
		{name: "null rejected", raw: map[string]any{"food_after_slot": nil}, wantErr: true},
		{name: "garbage string rejected", raw: map[string]any{"max_per_day": "many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OptionsFromMap(DefaultOptions(), tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidOption)
				assert.Equal(t, DefaultOptions(), got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsFromMapKeepsBudget(t *testing.T) {
	base := Options{MaxPerDay: 3, FoodAfterSlot: 1, MaxNodes: 1000}
	got, err := OptionsFromMap(base, map[string]any{"max_per_day": 2})
	require.NoError(t, err)
	assert.Equal(t, 1000, got.MaxNodes)
	assert.Equal(t, 2, got.MaxPerDay)
}

func TestDateRange(t *testing.T) {
	r, err := ParseDateRange("2025-02-27", "2025-03-02")
	require.NoError(t, err)
	assert.Equal(t, 4, r.Days())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), r.DateOf(3))

	_, err = ParseDateRange("2025-13-01", "2025-03-02")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ParseDateRange("", "2025-03-02")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	assert.ErrorIs(t, DateRange{}.Validate(), ErrInvalidDateRange)
}

func TestNewDateRangeDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	start := time.Date(2025, 6, 1, 23, 30, 0, 0, loc)
	end := time.Date(2025, 6, 2, 0, 15, 0, 0, loc)
	r, err := NewDateRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Days())
}

func TestFormulate(t *testing.T) {
	catalog := []Activity{act("Museum", "sight"), act("Lunch", "food")}
	p, err := Formulate(catalog, mustRange(t, "2025-06-01", "2025-06-02"), Options{MaxPerDay: 2, FoodAfterSlot: 1})
	require.NoError(t, err)

	labels := make([]string, 0, len(p.Variables))
	for _, v := range p.Variables {
		labels = append(labels, v.Label())
	}
	assert.Equal(t, []string{"Day1_Slot1", "Day1_Slot2", "Day2_Slot1", "Day2_Slot2"}, labels)
	assert.Equal(t, "Day2", p.Variables[3].DayLabel())

	require.Len(t, p.Constraints, 2)
	assert.Equal(t, "no_duplicate", p.Constraints[0].Name)
	assert.Equal(t, "food_after_slot", p.Constraints[1].Name)

	first := p.Domains[p.Variables[0]]
	second := p.Domains[p.Variables[1]]
	assert.Equal(t, first, second)
	first[0] = act("Replaced", "sight")
	assert.Equal(t, "Museum", second[0].Name())
	assert.Equal(t, "Museum", catalog[0].Name())
}

func TestConstraints(t *testing.T) {
	assignment := NewAssignment()
	museum := act("Museum", "sight")
	assignment.Assign(Variable{Day: 1, Slot: 1}, museum)

	noDup := NoDuplicate()
	assert.False(t, noDup.Check(assignment, Variable{Day: 2, Slot: 1}, act("Museum", "sight")))
	assert.True(t, noDup.Check(assignment, Variable{Day: 2, Slot: 1}, act("Museum", "museum")))

	food := FoodAfterSlot(2)
	lunch := act("Lunch", "food")
	assert.False(t, food.Check(assignment, Variable{Day: 1, Slot: 1}, lunch))
	assert.True(t, food.Check(assignment, Variable{Day: 1, Slot: 2}, lunch))
	assert.True(t, food.Check(assignment, Variable{Day: 1, Slot: 1}, museum))

	assignment.Unassign(Variable{Day: 1, Slot: 1})
	assert.Equal(t, 0, assignment.Len())
	assert.True(t, noDup.Check(assignment, Variable{Day: 1, Slot: 2}, museum))
}

func TestActivityAccessors(t *testing.T) {
	a := Activity{"name": "Warung", "category": "food", "price": 2}
	assert.True(t, a.IsFood())
	assert.Equal(t, "Warung", a.Name())
	assert.Equal(t, "food", a.Category())

	untyped := Activity{"name": "Walk", "category": 7}
	assert.False(t, untyped.IsFood())
	assert.Equal(t, "", untyped.Category())
}
