package services

import (
	"fmt"
	"regexp"
)

// maxNameAttempts bounds the collision search. Past it the last candidate is
// returned even if it still collides, so uniqueness is best-effort at extreme
// collision counts.
const maxNameAttempts = 1000

// ResolveUniqueName returns desired unchanged when no sibling carries it.
// On a collision it counts the siblings whose name ends in desired_<n> and
// proposes desired_<count+1>. The count is taken from a point-in-time
// snapshot of siblings; concurrent creates with the same desired name can
// still both win the same resolved name.
func ResolveUniqueName(desired string, siblings []string) string {
	taken := make(map[string]bool, len(siblings))
	for _, name := range siblings {
		taken[name] = true
	}

	suffixed := regexp.MustCompile(regexp.QuoteMeta(desired) + `_(\d+)$`)

	name := desired
	for attempt := 0; attempt < maxNameAttempts && taken[name]; attempt++ {
		count := 1
		for _, sibling := range siblings {
			if suffixed.MatchString(sibling) {
				count++
			}
		}
		name = fmt.Sprintf("%s_%d", desired, count)
	}
	return name
}
