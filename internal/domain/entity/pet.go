package entity

// PetInfo is the pet metadata decoded from an auction's item payload.
// Level and Candied are derived once at decode time and treated as
// facts by every downstream consumer.
type PetInfo struct {
	Tier      string  `json:"tier"`
	Type      string  `json:"type"`
	Exp       float64 `json:"exp"`
	CandyUsed float64 `json:"candyUsed"`
	Level     int     `json:"petLevel"`
	Candied   bool    `json:"isCandied"`
}
