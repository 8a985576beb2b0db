package model

import "strings"

// Label marker conventions for the tracked repository. Resolution-* records
// a triage disposition and must come from a known actor to count; WG-*
// routes an issue to a working group and is frequently applied by
// automation on the team's behalf, so it counts regardless of actor.
const (
	resolutionLabelPrefix = "Resolution-"
	ackLabelPrefix        = "WG-"
)

// IsResolutionLabel reports whether name carries a resolution-marker prefix.
func IsResolutionLabel(name string) bool {
	return strings.HasPrefix(name, resolutionLabelPrefix) || strings.HasPrefix(name, ackLabelPrefix)
}

// IsAckLabel reports whether name is a team-acknowledgment marker that
// counts as engagement no matter who applied it.
func IsAckLabel(name string) bool {
	return strings.HasPrefix(name, ackLabelPrefix)
}
