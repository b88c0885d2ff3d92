// Package scheduler assigns catalog activities to day/slot positions with a
// depth-first backtracking search over a fixed variable and value order.
package scheduler

import "reflect"

// CategoryFood marks activities that may only start from the configured slot onward.
const CategoryFood = "food"

// Activity is an opaque catalog record. The engine only reads the "category" field;
// every other field is carried through untouched.
type Activity map[string]any

// Category returns the activity category, or an empty string when absent.
func (a Activity) Category() string {
	if a == nil {
		return ""
	}
	if category, ok := a["category"].(string); ok {
		return category
	}
	return ""
}

// Name returns the "name" field when present.
func (a Activity) Name() string {
	if a == nil {
		return ""
	}
	if name, ok := a["name"].(string); ok {
		return name
	}
	return ""
}

// Equal reports whether both records carry identical fields. Distinct activities with
// identical fields are indistinguishable.
func (a Activity) Equal(other Activity) bool {
	return reflect.DeepEqual(a, other)
}

// IsFood reports whether the activity belongs to the food category.
func (a Activity) IsFood() bool {
	return a.Category() == CategoryFood
}
