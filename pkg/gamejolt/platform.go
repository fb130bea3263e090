package gamejolt

import "strings"

// Platform is a set of OS a build runs on.
type Platform uint8

const (
	Windows Platform = 1 << iota
	Mac
	Linux
	Other
)

var platformNames = []struct {
	p    Platform
	name string
}{
	{Windows, "Windows"},
	{Mac, "Mac"},
	{Linux, "Linux"},
	{Other, "Other"},
}

func (p Platform) Has(x Platform) bool { return p&x == x }

// Names lists the set members, always in the same order.
func (p Platform) Names() (names []string) {
	for _, n := range platformNames {
		if p.Has(n.p) {
			names = append(names, n.name)
		}
	}
	return
}

func (p Platform) String() string { return strings.Join(p.Names(), ", ") }
