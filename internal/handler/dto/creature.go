package dto

import "github.com/hagiodex/hagiodex/internal/model"

// StatsBody carries base stats on the wire.
type StatsBody struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// CreateCreatureRequest represents the request body for adding a creature.
type CreateCreatureRequest struct {
	Name  string    `json:"name"`
	Types []string  `json:"types"`
	Stats StatsBody `json:"stats"`
}

// CreatureResponse represents a creature in API responses.
type CreatureResponse struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Types []string  `json:"types"`
	Stats StatsBody `json:"stats"`
}

// ToCreatureResponse converts a Creature model to CreatureResponse DTO.
func ToCreatureResponse(c *model.Creature) *CreatureResponse {
	types := c.Types
	if types == nil {
		types = []string{}
	}
	return &CreatureResponse{
		ID:    c.ID,
		Name:  c.Name,
		Types: types,
		Stats: StatsBody{
			HP:      c.Stats.HP,
			Attack:  c.Stats.Attack,
			Defense: c.Stats.Defense,
		},
	}
}

// ToCreatureListResponse converts creatures, keeping an empty list as [].
func ToCreatureListResponse(creatures []*model.Creature) []*CreatureResponse {
	out := make([]*CreatureResponse, 0, len(creatures))
	for _, c := range creatures {
		out = append(out, ToCreatureResponse(c))
	}
	return out
}
