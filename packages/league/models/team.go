package models

// The league is a fixed two-club affair. Every roster, finance and
// settlement record belongs to exactly one of these.
const (
	TeamAEK  = "AEK"
	TeamReal = "Real"
)

// ValidTeam reports whether name is one of the two league clubs.
func ValidTeam(name string) bool {
	return name == TeamAEK || name == TeamReal
}

// OpposingTeam returns the other club.
func OpposingTeam(name string) string {
	if name == TeamAEK {
		return TeamReal
	}
	return TeamAEK
}
