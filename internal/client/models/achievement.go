package models

// Achievement is one entry of the achievement catalogue. Experience is the
// reward granted when the achievement unlocks.
type Achievement struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Experience  int    `json:"experience"`
	Unlocked    bool   `json:"unlocked"`
}
