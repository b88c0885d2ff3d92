package scheduler

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// Day is one day of a produced schedule, activities ordered by slot.
type Day struct {
	Index      int        `json:"index"`
	Label      string     `json:"label"`
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

// Schedule is the day-grouped form of a complete assignment.
type Schedule struct {
	Days []Day
}

// NewSchedule wraps already grouped days.
func NewSchedule(days []Day) *Schedule {
	return &Schedule{Days: days}
}

// buildSchedule groups the assignment by the day component of each variable and
// orders each day by slot index. It does not rely on map iteration order.
func buildSchedule(p *Problem, assignment *Assignment) *Schedule {
	type placement struct {
		slot     int
		activity Activity
	}

	byDay := make(map[int][]placement)
	for variable, activity := range assignment.values {
		byDay[variable.Day] = append(byDay[variable.Day], placement{slot: variable.Slot, activity: activity})
	}

	dayIndexes := make([]int, 0, len(byDay))
	for day := range byDay {
		dayIndexes = append(dayIndexes, day)
	}
	sort.Ints(dayIndexes)

	days := make([]Day, 0, len(dayIndexes))
	for _, day := range dayIndexes {
		placements := byDay[day]
		sort.Slice(placements, func(i, j int) bool {
			return placements[i].slot < placements[j].slot
		})
		activities := make([]Activity, 0, len(placements))
		for _, item := range placements {
			activities = append(activities, item.activity)
		}
		days = append(days, Day{
			Index:      day,
			Label:      dayLabel(day),
			Date:       p.Range.DateOf(day),
			Activities: activities,
		})
	}
	return &Schedule{Days: days}
}

// Map returns the day label to activities mapping.
func (s *Schedule) Map() map[string][]Activity {
	result := make(map[string][]Activity, len(s.Days))
	for _, day := range s.Days {
		result[day.Label] = day.Activities
	}
	return result
}

// Day looks up a day by label.
func (s *Schedule) Day(label string) ([]Activity, bool) {
	for _, day := range s.Days {
		if day.Label == label {
			return day.Activities, true
		}
	}
	return nil, false
}

// Len returns the total number of placed activities.
func (s *Schedule) Len() int {
	total := 0
	for _, day := range s.Days {
		total += len(day.Activities)
	}
	return total
}

// MarshalJSON renders {"Day1": [...], "Day2": [...]} with keys in day order.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range s.Days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day.Label)
		if err != nil {
			return nil, err
		}
		activities := day.Activities
		if activities == nil {
			activities = []Activity{}
		}
		value, err := json.Marshal(activities)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
