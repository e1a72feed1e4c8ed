package dto

import (
	"time"

	"github.com/hagiodex/hagiodex/internal/model"
)

// SaintRequest is used for both creation and partial update. Dates are
// YYYY-MM-DD.
type SaintRequest struct {
	Name       *string `json:"name,omitempty"`
	Patronage  *string `json:"patronage,omitempty"`
	FeastDay   *string `json:"feast_day,omitempty"`
	Veneration *string `json:"veneration,omitempty"`
	Birthplace *string `json:"birthplace,omitempty"`
	BirthDate  *string `json:"birth_date,omitempty"`
	DeathDate  *string `json:"death_date,omitempty"`
	History    *string `json:"history,omitempty"`
	Attributes *string `json:"attributes,omitempty"`
}

// SaintResponse represents a saint in API responses.
type SaintResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Patronage  string `json:"patronage"`
	FeastDay   string `json:"feast_day"`
	Veneration string `json:"veneration"`
	Birthplace string `json:"birthplace"`
	BirthDate  string `json:"birth_date"`
	DeathDate  string `json:"death_date"`
	History    string `json:"history"`
	Attributes string `json:"attributes,omitempty"`
}

// ToSaintResponse converts a Saint model to SaintResponse DTO.
func ToSaintResponse(s *model.Saint) *SaintResponse {
	return &SaintResponse{
		ID:         s.ID,
		Name:       s.Name,
		Patronage:  s.Patronage,
		FeastDay:   formatDate(s.FeastDay),
		Veneration: s.Veneration,
		Birthplace: s.Birthplace,
		BirthDate:  formatDate(s.BirthDate),
		DeathDate:  formatDate(s.DeathDate),
		History:    s.History,
		Attributes: s.Attributes,
	}
}

// ToSaintListResponse converts saints, keeping an empty list as [].
func ToSaintListResponse(saints []*model.Saint) []*SaintResponse {
	out := make([]*SaintResponse, 0, len(saints))
	for _, s := range saints {
		out = append(out, ToSaintResponse(s))
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}
