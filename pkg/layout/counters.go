package layout

import (
	"strconv"
	"strings"
)

// CSS counter support. Lists reset the "list-item" counter and every item
// increments it; the marker renderer reads the running value.

const listItemCounter = "list-item"

// counterReset resets a counter to the specified value (default 0)
// This creates a new scope for the counter.
func (le *LayoutEngine) counterReset(name string, value int) {
	if le.counters == nil {
		le.counters = make(map[string][]int)
	}
	le.counters[name] = append(le.counters[name], value)
}

// counterIncrement increments a counter by the specified value (default 1)
func (le *LayoutEngine) counterIncrement(name string, value int) {
	if le.counters == nil {
		le.counters = make(map[string][]int)
	}
	stack := le.counters[name]
	if len(stack) == 0 {
		// Counter wasn't reset - implicitly create it at 0
		le.counters[name] = []int{value}
	} else {
		le.counters[name][len(stack)-1] += value
	}
}

// counterValue returns the current value of a counter
func (le *LayoutEngine) counterValue(name string) int {
	stack := le.counters[name]
	if len(stack) == 0 {
		return 0
	}
	return stack[len(stack)-1]
}

// counterPop removes the topmost scope of a counter (called when leaving an element that reset it)
func (le *LayoutEngine) counterPop(name string) {
	stack := le.counters[name]
	if len(stack) > 0 {
		le.counters[name] = stack[:len(stack)-1]
	}
}

// applyCounterProperties runs counter-reset then counter-increment as
// declared on a list or item style.
func (le *LayoutEngine) applyCounterProperties(reset, increment string) []string {
	var pushed []string
	for name, v := range parseCounterReset(reset) {
		le.counterReset(name, v)
		pushed = append(pushed, name)
	}
	for name, v := range parseCounterIncrement(increment) {
		le.counterIncrement(name, v)
	}
	return pushed
}

// parseCounterReset parses the counter-reset property value
// Format: "name [value] [name2 [value2] ...]" or "none"
func parseCounterReset(value string) map[string]int {
	return parseCounterList(value, 0)
}

// parseCounterIncrement parses the counter-increment property value
// Format: "name [value] [name2 [value2] ...]" or "none"
func parseCounterIncrement(value string) map[string]int {
	return parseCounterList(value, 1)
}

func parseCounterList(value string, def int) map[string]int {
	result := make(map[string]int)
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return result
	}

	parts := strings.Fields(value)
	i := 0
	for i < len(parts) {
		name := parts[i]
		v := def
		if i+1 < len(parts) {
			if n, err := strconv.Atoi(parts[i+1]); err == nil {
				v = n
				i++
			}
		}
		result[name] = v
		i++
	}
	return result
}
