package entity

import "strings"

// Region denotes where within a port a drop would land.
type Region int

const (
	RegionUnknown Region = iota // No match
	RegionNorth
	RegionSouth
	RegionEast
	RegionWest
	RegionCenter
)

var regionNames = map[Region]string{
	RegionUnknown: "unknown",
	RegionNorth:   "north",
	RegionSouth:   "south",
	RegionEast:    "east",
	RegionWest:    "west",
	RegionCenter:  "center",
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return regionNames[RegionUnknown]
}

// MarshalText encodes the region by name.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a region name. Unrecognized names decode to RegionUnknown.
func (r *Region) UnmarshalText(text []byte) error {
	*r = ParseRegion(string(text))
	return nil
}

// ParseRegion maps a case-insensitive name to a Region.
func ParseRegion(s string) Region {
	s = strings.ToLower(strings.TrimSpace(s))
	for region, name := range regionNames {
		if name == s {
			return region
		}
	}
	return RegionUnknown
}

// Valid reports whether r is one of the five drop regions.
func (r Region) Valid() bool {
	return r >= RegionNorth && r <= RegionCenter
}

// IsEdge reports whether r splits its target rather than joining it.
func (r Region) IsEdge() bool {
	return r >= RegionNorth && r <= RegionWest
}

// Orientation returns the split orientation an edge region produces.
// NORTH and SOUTH stack children vertically; EAST and WEST place them side by side.
func (r Region) Orientation() Orientation {
	switch r {
	case RegionNorth, RegionSouth:
		return OrientationVertical
	case RegionEast, RegionWest:
		return OrientationHorizontal
	default:
		return OrientationNone
	}
}

// Leading reports whether r occupies the first child of a split (left or top).
func (r Region) Leading() bool {
	return r == RegionNorth || r == RegionWest
}

// Opposite returns the region on the other side of the same split.
func (r Region) Opposite() Region {
	switch r {
	case RegionNorth:
		return RegionSouth
	case RegionSouth:
		return RegionNorth
	case RegionEast:
		return RegionWest
	case RegionWest:
		return RegionEast
	default:
		return r
	}
}

// SideRegion returns the edge region naming one side of a split with the given orientation.
func SideRegion(o Orientation, leading bool) Region {
	switch o {
	case OrientationHorizontal:
		if leading {
			return RegionWest
		}
		return RegionEast
	case OrientationVertical:
		if leading {
			return RegionNorth
		}
		return RegionSouth
	default:
		return RegionUnknown
	}
}
