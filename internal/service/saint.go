package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/model"
	"github.com/hagiodex/hagiodex/internal/repository"
)

const maxSaintTextLength = 20000

// SaintStore is the persistence the saint service needs.
type SaintStore interface {
	ListSaints(ctx context.Context) ([]*model.Saint, error)
	GetSaintByID(ctx context.Context, id int64) (*model.Saint, error)
	GetSaintByName(ctx context.Context, name string) (*model.Saint, error)
	CreateSaint(ctx context.Context, s *model.Saint) error
	UpdateSaint(ctx context.Context, id int64, patch model.SaintPatch) (*model.Saint, error)
	DeleteSaint(ctx context.Context, id int64) error
}

// SaintService handles the saint catalog.
type SaintService struct {
	store   SaintStore
	metrics metrics.Recorder
}

// NewSaintService creates a new SaintService.
func NewSaintService(store SaintStore, recorder metrics.Recorder) *SaintService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SaintService{store: store, metrics: recorder}
}

// SaintInput carries saint fields as received. Dates are YYYY-MM-DD strings.
// For updates a nil field is left unchanged; for creation every field except
// Attributes is required.
type SaintInput struct {
	Name       *string `json:"name"`
	Patronage  *string `json:"patronage"`
	FeastDay   *string `json:"feast_day"`
	Veneration *string `json:"veneration"`
	Birthplace *string `json:"birthplace"`
	BirthDate  *string `json:"birth_date"`
	DeathDate  *string `json:"death_date"`
	History    *string `json:"history"`
	Attributes *string `json:"attributes"`
}

func (in SaintInput) validate(create bool) error {
	in.Name = trimmed(in.Name)
	presence := validation.NilOrNotEmpty
	if create {
		presence = validation.Required
	}
	date := validation.Date(model.DateLayout).Error("must be a date in YYYY-MM-DD format")

	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, presence, validation.Length(1, maxCatalogNameLength), catalogName),
		validation.Field(&in.Patronage, presence, validation.Length(0, maxSaintTextLength)),
		validation.Field(&in.FeastDay, presence, date),
		validation.Field(&in.Veneration, presence, validation.Length(0, maxSaintTextLength)),
		validation.Field(&in.Birthplace, presence, validation.Length(0, maxSaintTextLength)),
		validation.Field(&in.BirthDate, presence, date),
		validation.Field(&in.DeathDate, presence, date),
		validation.Field(&in.History, presence, validation.Length(0, maxSaintTextLength)),
		validation.Field(&in.Attributes, validation.Length(0, maxSaintTextLength)),
	)
}

// patch converts validated input into a model patch.
func (in SaintInput) patch() model.SaintPatch {
	return model.SaintPatch{
		Name:       trimmed(in.Name),
		Patronage:  in.Patronage,
		FeastDay:   parseDate(in.FeastDay),
		Veneration: in.Veneration,
		Birthplace: in.Birthplace,
		BirthDate:  parseDate(in.BirthDate),
		DeathDate:  parseDate(in.DeathDate),
		History:    in.History,
		Attributes: in.Attributes,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// parseDate expects a value already accepted by the Date rule.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := time.Parse(model.DateLayout, *s)
	if err != nil {
		return nil
	}
	return &d
}

// ListSaints returns every saint ordered by name.
func (s *SaintService) ListSaints(ctx context.Context) ([]*model.Saint, error) {
	saints, err := s.store.ListSaints(ctx)
	if err != nil {
		return nil, fmt.Errorf("saint store: %w", err)
	}
	return saints, nil
}

// GetSaint looks a saint up by id when key is all digits, otherwise by
// case-insensitive name.
func (s *SaintService) GetSaint(ctx context.Context, key string) (*model.Saint, error) {
	lookup := ParseLookupKey(key)

	var (
		saint *model.Saint
		err   error
	)
	if lookup.IsID() {
		saint, err = s.store.GetSaintByID(ctx, lookup.ID)
	} else {
		saint, err = s.store.GetSaintByName(ctx, lookup.Name)
	}
	if err != nil {
		return nil, mapSaintStoreError(err)
	}
	return saint, nil
}

// CreateSaint adds a saint.
func (s *SaintService) CreateSaint(ctx context.Context, input SaintInput) (*model.Saint, error) {
	if err := input.validate(true); err != nil {
		return nil, invalid(err)
	}

	saint := &model.Saint{}
	input.patch().Apply(saint)

	if err := s.store.CreateSaint(ctx, saint); err != nil {
		return nil, mapSaintStoreError(err)
	}

	s.metrics.IncCatalogWrite(metrics.KindSaint, metrics.OpCreate)
	return saint, nil
}

// UpdateSaint changes only the supplied fields.
func (s *SaintService) UpdateSaint(ctx context.Context, id int64, input SaintInput) (*model.Saint, error) {
	if err := input.validate(false); err != nil {
		return nil, invalid(err)
	}

	saint, err := s.store.UpdateSaint(ctx, id, input.patch())
	if err != nil {
		return nil, mapSaintStoreError(err)
	}

	s.metrics.IncCatalogWrite(metrics.KindSaint, metrics.OpUpdate)
	return saint, nil
}

// DeleteSaint removes a saint.
func (s *SaintService) DeleteSaint(ctx context.Context, id int64) error {
	if err := s.store.DeleteSaint(ctx, id); err != nil {
		return mapSaintStoreError(err)
	}

	s.metrics.IncCatalogWrite(metrics.KindSaint, metrics.OpDelete)
	return nil
}

func mapSaintStoreError(err error) error {
	if errors.Is(err, repository.ErrSaintNotFound) {
		return ErrSaintNotFound
	}
	return fmt.Errorf("saint store: %w", err)
}
