package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/model"
	"github.com/hagiodex/hagiodex/internal/repository"
)

const (
	maxCatalogNameLength = 100
	maxTypeNameLength    = 32
	maxCreatureTypes     = 8
)

// catalogName rejects all-digit names, which a lookup would read as an id.
var catalogName = validation.Match(regexp.MustCompile(`\D`)).Error("must contain a non-digit character")

// CreatureStore is the persistence the creature service needs.
type CreatureStore interface {
	ListCreatures(ctx context.Context) ([]*model.Creature, error)
	GetCreatureByID(ctx context.Context, id int64) (*model.Creature, error)
	GetCreatureByName(ctx context.Context, name string) (*model.Creature, error)
	CreateCreature(ctx context.Context, c *model.Creature) error
}

// CreatureService handles creature catalog reads and inserts.
type CreatureService struct {
	store   CreatureStore
	metrics metrics.Recorder
}

// NewCreatureService creates a new CreatureService.
func NewCreatureService(store CreatureStore, recorder metrics.Recorder) *CreatureService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CreatureService{store: store, metrics: recorder}
}

// CreateCreatureInput defines input for adding a creature.
type CreateCreatureInput struct {
	Name    string   `json:"name"`
	Types   []string `json:"types"`
	HP      int      `json:"hp"`
	Attack  int      `json:"attack"`
	Defense int      `json:"defense"`
}

// Validate checks the name, each type and the stat bounds.
func (in CreateCreatureInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, maxCatalogNameLength), catalogName),
		validation.Field(&in.Types,
			validation.Length(0, maxCreatureTypes),
			validation.Each(validation.Required, validation.Length(1, maxTypeNameLength)),
		),
		validation.Field(&in.HP, validation.Min(0)),
		validation.Field(&in.Attack, validation.Min(0)),
		validation.Field(&in.Defense, validation.Min(0)),
	)
}

// ListCreatures returns every creature ordered by id.
func (s *CreatureService) ListCreatures(ctx context.Context) ([]*model.Creature, error) {
	creatures, err := s.store.ListCreatures(ctx)
	if err != nil {
		return nil, fmt.Errorf("creature store: %w", err)
	}
	return creatures, nil
}

// GetCreature looks a creature up by id when key is all digits, otherwise by
// case-insensitive name.
func (s *CreatureService) GetCreature(ctx context.Context, key string) (*model.Creature, error) {
	lookup := ParseLookupKey(key)

	var (
		c   *model.Creature
		err error
	)
	if lookup.IsID() {
		c, err = s.store.GetCreatureByID(ctx, lookup.ID)
	} else {
		c, err = s.store.GetCreatureByName(ctx, lookup.Name)
	}
	if err != nil {
		return nil, mapCreatureStoreError(err)
	}
	return c, nil
}

// CreateCreature adds a creature with its types in the given order.
func (s *CreatureService) CreateCreature(ctx context.Context, input CreateCreatureInput) (*model.Creature, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, invalid(err)
	}

	types := make([]string, len(input.Types))
	for i, t := range input.Types {
		types[i] = strings.TrimSpace(t)
	}

	c := &model.Creature{
		Name:  input.Name,
		Types: types,
		Stats: model.Stats{HP: input.HP, Attack: input.Attack, Defense: input.Defense},
	}
	if err := s.store.CreateCreature(ctx, c); err != nil {
		return nil, mapCreatureStoreError(err)
	}

	s.metrics.IncCatalogWrite(metrics.KindCreature, metrics.OpCreate)
	return c, nil
}

func mapCreatureStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCreatureNotFound):
		return ErrCreatureNotFound
	case errors.Is(err, repository.ErrCreatureNameExists):
		return ErrCreatureExists
	default:
		return fmt.Errorf("creature store: %w", err)
	}
}
