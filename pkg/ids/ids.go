// Package ids generates the fixed-width numeric identifiers used for
// student and subject records.
package ids

import (
	"math"
	"math/rand"
	"strconv"
)

// Numeric returns a random numeric string of exactly length digits that is
// not present in taken. The first digit is never zero so the width is stable.
// Callers are expected to keep the taken set far smaller than the ID space.
func Numeric(length int, taken map[string]struct{}) string {
	lower := int(math.Pow10(length - 1))
	upper := int(math.Pow10(length)) - 1

	for {
		candidate := strconv.Itoa(lower + rand.Intn(upper-lower+1))
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}

// TakenSet builds the lookup set Numeric expects from a list of IDs.
func TakenSet(existing []string) map[string]struct{} {
	set := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		set[id] = struct{}{}
	}
	return set
}
