// Package domain contains the core types of the task tracker: tasks, their
// state-change history, and the criteria used to filter them.
package domain

import (
	"fmt"
	"time"
)

// Activity classifies how engaged a task currently is
type Activity string

const (
	ActivityNonActive Activity = "Non-Active"
	ActivityActive    Activity = "Active"
	ActivityClosed    Activity = "Closed"
)

// Activities lists every activity in board order
var Activities = []Activity{ActivityNonActive, ActivityActive, ActivityClosed}

// String returns the display string
func (a Activity) String() string {
	return string(a)
}

// Column returns the board column index for this activity
func (a Activity) Column() int {
	switch a {
	case ActivityNonActive:
		return 0
	case ActivityActive:
		return 1
	case ActivityClosed:
		return 2
	default:
		return 0
	}
}

// Valid reports whether a is one of the known activities
func (a Activity) Valid() bool {
	switch a {
	case ActivityNonActive, ActivityActive, ActivityClosed:
		return true
	}
	return false
}

// ParseActivity parses an activity label. "NonActive" is accepted as an alias
// of "Non-Active".
func ParseActivity(s string) (Activity, error) {
	switch s {
	case "Non-Active", "NonActive":
		return ActivityNonActive, nil
	case "Active":
		return ActivityActive, nil
	case "Closed":
		return ActivityClosed, nil
	}
	return "", fmt.Errorf("unknown activity %q", s)
}

// Size is the magnitude category of a task
type Size string

const (
	SizeTiny       Size = "Tiny"
	SizeExtraSmall Size = "Extra Small"
	SizeSmall      Size = "Small"
	SizeMedium     Size = "Medium"
	SizeLarge      Size = "Large"
	SizeExtraLarge Size = "Extra Large"
	Unsized        Size = "No Size"
)

// Sizes lists the sized categories from smallest to largest
var Sizes = []Size{SizeTiny, SizeExtraSmall, SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}

// String returns the display string
func (s Size) String() string {
	return string(s)
}

// Rank orders sizes for sorting. Unsized ranks below every sized value.
func (s Size) Rank() int {
	for i, size := range Sizes {
		if s == size {
			return i + 1
		}
	}
	return 0
}

// Short returns a compact badge label
func (s Size) Short() string {
	switch s {
	case SizeTiny:
		return "XXS"
	case SizeExtraSmall:
		return "XS"
	case SizeSmall:
		return "S"
	case SizeMedium:
		return "M"
	case SizeLarge:
		return "L"
	case SizeExtraLarge:
		return "XL"
	default:
		return "-"
	}
}

// ParseSize parses a size label. An empty string means Unsized.
func ParseSize(s string) (Size, error) {
	if s == "" || s == string(Unsized) {
		return Unsized, nil
	}
	for _, size := range Sizes {
		if s == string(size) {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown size %q", s)
}

// Descriptor is an optional free-text note explaining an activity
type Descriptor struct {
	text string
	ok   bool
}

// NoDescriptor marks the absence of an activity descriptor
var NoDescriptor = Descriptor{}

// Describe wraps text as a present descriptor
func Describe(text string) Descriptor {
	return Descriptor{text: text, ok: true}
}

// Get returns the text and whether it is present
func (d Descriptor) Get() (string, bool) {
	return d.text, d.ok
}

// String returns the text, or "none" when absent
func (d Descriptor) String() string {
	if !d.ok {
		return "none"
	}
	return d.text
}

// Clock supplies the current moment
type Clock interface {
	Now() time.Time
}

// IDSource supplies unique task keys
type IDSource interface {
	NewID() string
}
