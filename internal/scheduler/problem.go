package scheduler

import "fmt"

// Variable is one schedulable slot, identified by 1-based day and slot indices.
type Variable struct {
	Day  int
	Slot int
}

// Label renders the variable as Day<d>_Slot<s>.
func (v Variable) Label() string {
	return fmt.Sprintf("Day%d_Slot%d", v.Day, v.Slot)
}

// DayLabel renders the day component as Day<d>.
func (v Variable) DayLabel() string {
	return dayLabel(v.Day)
}

func (v Variable) String() string {
	return v.Label()
}

func dayLabel(day int) string {
	return fmt.Sprintf("Day%d", day)
}

// ConstraintFunc decides whether value may be assigned to variable given the
// assignment as it stood before the candidate is added.
type ConstraintFunc func(assignment *Assignment, variable Variable, value Activity) bool

// Constraint is a named, stateless predicate.
type Constraint struct {
	Name  string
	Check ConstraintFunc
}

// Problem is the variable/domain/constraint triple consumed by Solve.
type Problem struct {
	// Variables are ordered day-major, slot-minor.
	Variables []Variable
	// Domains hold an independent copy of the catalog per variable, in caller order.
	Domains     map[Variable][]Activity
	Constraints []Constraint
	Range       DateRange
	Options     Options
}

// Formulate builds the search problem. Empty catalogs are accepted; the search will
// simply report no solution.
func Formulate(activities []Activity, dates DateRange, opts Options) (*Problem, error) {
	if err := dates.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	numDays := dates.Days()
	variables := make([]Variable, 0, numDays*opts.MaxPerDay)
	domains := make(map[Variable][]Activity, numDays*opts.MaxPerDay)
	for day := 1; day <= numDays; day++ {
		for slot := 1; slot <= opts.MaxPerDay; slot++ {
			variable := Variable{Day: day, Slot: slot}
			variables = append(variables, variable)
			domain := make([]Activity, len(activities))
			copy(domain, activities)
			domains[variable] = domain
		}
	}

	return &Problem{
		Variables: variables,
		Domains:   domains,
		Constraints: []Constraint{
			NoDuplicate(),
			FoodAfterSlot(opts.FoodAfterSlot),
		},
		Range:   dates,
		Options: opts,
	}, nil
}

// Consistent evaluates every constraint in order and stops at the first rejection.
func (p *Problem) Consistent(assignment *Assignment, variable Variable, value Activity) bool {
	for _, constraint := range p.Constraints {
		if !constraint.Check(assignment, variable, value) {
			return false
		}
	}
	return true
}

// NoDuplicate rejects a value already present anywhere in the assignment.
func NoDuplicate() Constraint {
	return Constraint{
		Name: "no_duplicate",
		Check: func(assignment *Assignment, _ Variable, value Activity) bool {
			return !assignment.Contains(value)
		},
	}
}

// FoodAfterSlot rejects food activities placed before minSlot within a day.
func FoodAfterSlot(minSlot int) Constraint {
	return Constraint{
		Name: "food_after_slot",
		Check: func(_ *Assignment, variable Variable, value Activity) bool {
			if !value.IsFood() {
				return true
			}
			return variable.Slot >= minSlot
		},
	}
}

// Assignment maps variables to chosen activities. It is mutated in place during
// search and rolled back with Unassign.
type Assignment struct {
	values map[Variable]Activity
}

// NewAssignment returns an empty assignment.
func NewAssignment() *Assignment {
	return &Assignment{values: make(map[Variable]Activity)}
}

// Assign records value for variable, replacing any previous value.
func (a *Assignment) Assign(variable Variable, value Activity) {
	a.values[variable] = value
}

// Unassign removes the entry for variable.
func (a *Assignment) Unassign(variable Variable) {
	delete(a.values, variable)
}

// Value returns the activity assigned to variable.
func (a *Assignment) Value(variable Variable) (Activity, bool) {
	value, ok := a.values[variable]
	return value, ok
}

// Len returns the number of assigned variables.
func (a *Assignment) Len() int {
	return len(a.values)
}

// Contains reports whether an equal activity is already assigned to any variable.
func (a *Assignment) Contains(value Activity) bool {
	for _, assigned := range a.values {
		if assigned.Equal(value) {
			return true
		}
	}
	return false
}
