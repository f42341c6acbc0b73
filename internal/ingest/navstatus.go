package ingest

// NavStatus is the enumerated AIS navigational status. Unknown carries no
// sentinel string of its own; ParseNavStatus reports it for any value
// outside the fixed set, mirroring the source's "unrecognised value"
// fallback — the broadcast is not rejected, only this field is discarded.
type NavStatus int

const (
	NavStatusUnknown NavStatus = iota
	NavStatusUnderWayUsingEngine
	NavStatusAtAnchor
	NavStatusNotUnderCommand
	NavStatusRestrictedManeuverability
	NavStatusConstrainedByHerDraught
	NavStatusMoored
	NavStatusAground
	NavStatusEngagedInFishing
	NavStatusUnderWaySailing
	NavStatusAISSARTActive
)

var navStatusByString = map[string]NavStatus{
	"Under way using engine":     NavStatusUnderWayUsingEngine,
	"At anchor":                  NavStatusAtAnchor,
	"Not under command":          NavStatusNotUnderCommand,
	"Restricted maneuverability": NavStatusRestrictedManeuverability,
	"Constrained by her draught": NavStatusConstrainedByHerDraught,
	"Moored":                     NavStatusMoored,
	"Aground":                    NavStatusAground,
	"Engaged in fishing":         NavStatusEngagedInFishing,
	"Under way sailing":          NavStatusUnderWaySailing,
	"AIS-SART (active)":          NavStatusAISSARTActive,
}

// ParseNavStatus maps the raw CSV string to a NavStatus via exact,
// case-sensitive match, returning NavStatusUnknown for anything else.
func ParseNavStatus(s string) NavStatus {
	if v, ok := navStatusByString[s]; ok {
		return v
	}
	return NavStatusUnknown
}
