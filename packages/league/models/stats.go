package models

type TeamRecord struct {
	Wins  int64 `json:"wins"`
	Goals int64 `json:"goals"`
}

type Stats struct {
	TotalMatches     int64              `json:"total_matches"`
	Draws            int64              `json:"draws"`
	Teams            map[string]TeamRecord `json:"teams"`
	TopScorers       []Player           `json:"top_scorers"`
	SdSLeaders       []SpielerDesSpiels `json:"sds_leaders"`
	ActiveBans       int64              `json:"active_bans"`
	MatchesLast7Days int64              `json:"matches_last_7_days"`
}
