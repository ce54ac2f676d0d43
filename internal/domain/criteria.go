package domain

import (
	"fmt"
	"sort"
	"time"
)

// Criteria keys as they appear in loosely typed input
const (
	KeyActivity              = "activity"
	KeyDateLessThenOrEqual   = "dateLessThenOrEqual"
	KeyDateLessThen          = "dateLessThen"
	KeyDateGraterThenOrEqual = "dateGraterThenOrEqual"
	KeyDateGraterThen        = "dateGraterThen"
)

// CriteriaKeys lists the supported keys in pipeline order
var CriteriaKeys = []string{
	KeyActivity,
	KeyDateLessThenOrEqual,
	KeyDateLessThen,
	KeyDateGraterThenOrEqual,
	KeyDateGraterThen,
}

// Criteria is a sparse set of constraints on a task collection. A nil field
// imposes no constraint. Date bounds compare against the timestamp of each
// task's current state.
type Criteria struct {
	Activity       *Activity
	DateAtOrBefore *time.Time
	DateBefore     *time.Time
	DateAtOrAfter  *time.Time
	DateAfter      *time.Time
}

// IsEmpty reports whether no constraint is set
func (c Criteria) IsEmpty() bool {
	return c.Activity == nil &&
		c.DateAtOrBefore == nil &&
		c.DateBefore == nil &&
		c.DateAtOrAfter == nil &&
		c.DateAfter == nil
}

// Clone returns a copy that shares no pointers with c
func (c Criteria) Clone() Criteria {
	var r Criteria
	if c.Activity != nil {
		a := *c.Activity
		r.Activity = &a
	}
	r.DateAtOrBefore = cloneTime(c.DateAtOrBefore)
	r.DateBefore = cloneTime(c.DateBefore)
	r.DateAtOrAfter = cloneTime(c.DateAtOrAfter)
	r.DateAfter = cloneTime(c.DateAfter)
	return r
}

// WithActivity returns a copy of c constrained to activity a, replacing any
// activity already present
func (c Criteria) WithActivity(a Activity) Criteria {
	r := c.Clone()
	r.Activity = &a
	return r
}

// WithDateAtOrBefore returns a copy of c with an inclusive upper bound
func (c Criteria) WithDateAtOrBefore(d time.Time) Criteria {
	r := c.Clone()
	r.DateAtOrBefore = &d
	return r
}

// WithDateBefore returns a copy of c with an exclusive upper bound
func (c Criteria) WithDateBefore(d time.Time) Criteria {
	r := c.Clone()
	r.DateBefore = &d
	return r
}

// WithDateAtOrAfter returns a copy of c with an inclusive lower bound
func (c Criteria) WithDateAtOrAfter(d time.Time) Criteria {
	r := c.Clone()
	r.DateAtOrAfter = &d
	return r
}

// WithDateAfter returns a copy of c with an exclusive lower bound
func (c Criteria) WithDateAfter(d time.Time) Criteria {
	r := c.Clone()
	r.DateAfter = &d
	return r
}

// Map renders the present constraints keyed by their loose-input names.
// Absent constraints have no entry.
func (c Criteria) Map() map[string]string {
	m := make(map[string]string)
	if c.Activity != nil {
		m[KeyActivity] = c.Activity.String()
	}
	putTime(m, KeyDateLessThenOrEqual, c.DateAtOrBefore)
	putTime(m, KeyDateLessThen, c.DateBefore)
	putTime(m, KeyDateGraterThenOrEqual, c.DateAtOrAfter)
	putTime(m, KeyDateGraterThen, c.DateAfter)
	return m
}

// CriteriaFromMap builds criteria from loosely typed input. Unknown keys fail
// with ErrUnsupportedCriteria; unparseable values with ErrInvalidCriteria.
// Dates are RFC 3339 or YYYY-MM-DD.
func CriteriaFromMap(m map[string]string) (Criteria, error) {
	var c Criteria

	// Sorted so the reported error does not depend on map order
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := m[key]
		if key == KeyActivity {
			a, err := ParseActivity(value)
			if err != nil {
				return Criteria{}, &CriteriaError{Key: key, Value: value, Err: fmt.Errorf("%w: %v", ErrInvalidCriteria, err)}
			}
			c.Activity = &a
			continue
		}

		target := c.dateField(key)
		if target == nil {
			return Criteria{}, &CriteriaError{Key: key, Err: ErrUnsupportedCriteria}
		}
		d, err := ParseTime(value)
		if err != nil {
			return Criteria{}, &CriteriaError{Key: key, Value: value, Err: fmt.Errorf("%w: %v", ErrInvalidCriteria, err)}
		}
		*target = &d
	}

	return c, nil
}

func (c *Criteria) dateField(key string) **time.Time {
	switch key {
	case KeyDateLessThenOrEqual:
		return &c.DateAtOrBefore
	case KeyDateLessThen:
		return &c.DateBefore
	case KeyDateGraterThenOrEqual:
		return &c.DateAtOrAfter
	case KeyDateGraterThen:
		return &c.DateAfter
	default:
		return nil
	}
}

// ParseTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC)
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func putTime(m map[string]string, key string, t *time.Time) {
	if t != nil {
		m[key] = t.Format(time.RFC3339Nano)
	}
}
