package model

// Stats are a creature's base battle statistics.
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// Creature is a catalog entry with an ordered list of elemental types.
type Creature struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
	Stats Stats    `json:"stats"`
}
