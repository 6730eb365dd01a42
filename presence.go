package conform

import "strings"

// Presence is the bit flag collected by GetValidValueOrDefaultWithMeta.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // An own value existed in the input.
	PresenceWasNull                             // The input value was null.
	PresenceDefaultApplied                      // The schema default replaced the value.
	PresenceInvalid                             // The value is invalid and no usable default existed.
	PresenceDropped                             // Removed by additionalProperties: false.
)

func (p Presence) String() string {
	if p == 0 {
		return "-"
	}
	var parts []string
	for _, f := range []struct {
		bit  Presence
		name string
	}{
		{PresenceSeen, "seen"},
		{PresenceWasNull, "null"},
		{PresenceDefaultApplied, "default"},
		{PresenceInvalid, "invalid"},
		{PresenceDropped, "dropped"},
	} {
		if p&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// PresenceMap maps JSON Pointers to Presence flags. The root is "/".
type PresenceMap map[string]Presence

// Decoded carries the normalized value along with presence metadata.
type Decoded struct {
	Value    any
	Presence PresenceMap
}

// Filter keeps the entries whose pointer starts with one of include (all when
// include is empty) and with none of exclude.
func (pm PresenceMap) Filter(include, exclude []string) PresenceMap {
	if pm == nil {
		return nil
	}
	filtered := make(PresenceMap, len(pm))

	shouldInclude := func(path string) bool {
		if len(include) > 0 {
			ok := false
			for _, p := range include {
				if strings.HasPrefix(path, p) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		for _, p := range exclude {
			if strings.HasPrefix(path, p) {
				return false
			}
		}
		return true
	}

	for k, v := range pm {
		if shouldInclude(k) {
			filtered[k] = v
		}
	}
	return filtered
}
