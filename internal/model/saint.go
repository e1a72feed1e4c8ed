package model

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Saint is a catalog entry for a historical or religious figure.
// Dates carry no time-of-day component.
type Saint struct {
	ID         int64
	Name       string
	Patronage  string
	FeastDay   time.Time
	Veneration string
	Birthplace string
	BirthDate  time.Time
	DeathDate  time.Time
	History    string
	Attributes string
}

// SaintPatch lists the saint fields a caller supplied for update.
type SaintPatch struct {
	Name       *string
	Patronage  *string
	FeastDay   *time.Time
	Veneration *string
	Birthplace *string
	BirthDate  *time.Time
	DeathDate  *time.Time
	History    *string
	Attributes *string
}

// IsEmpty reports whether the patch changes nothing.
func (p SaintPatch) IsEmpty() bool {
	return p.Name == nil && p.Patronage == nil && p.FeastDay == nil &&
		p.Veneration == nil && p.Birthplace == nil && p.BirthDate == nil &&
		p.DeathDate == nil && p.History == nil && p.Attributes == nil
}

// Apply copies the supplied fields onto s.
func (p SaintPatch) Apply(s *Saint) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Patronage != nil {
		s.Patronage = *p.Patronage
	}
	if p.FeastDay != nil {
		s.FeastDay = *p.FeastDay
	}
	if p.Veneration != nil {
		s.Veneration = *p.Veneration
	}
	if p.Birthplace != nil {
		s.Birthplace = *p.Birthplace
	}
	if p.BirthDate != nil {
		s.BirthDate = *p.BirthDate
	}
	if p.DeathDate != nil {
		s.DeathDate = *p.DeathDate
	}
	if p.History != nil {
		s.History = *p.History
	}
	if p.Attributes != nil {
		s.Attributes = *p.Attributes
	}
}
