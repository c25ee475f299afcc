package record

import "time"

// Round 一局结束后的结算记录
type Round struct {
	ID          string         `json:"id"`
	Room        string         `json:"room"`
	Number      int            `json:"number"`
	Landlord    string         `json:"landlord"`
	Winner      string         `json:"winner"`
	LandlordWon bool           `json:"landlordWon"`
	Multiplier  int            `json:"multiplier"`
	Deltas      map[string]int `json:"deltas"`
	EndedAt     time.Time      `json:"endedAt"`
}
