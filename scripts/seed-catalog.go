package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hagiodex/hagiodex/internal/handler/dto"
	"github.com/hagiodex/hagiodex/internal/metrics"
	"github.com/hagiodex/hagiodex/internal/repository"
	"github.com/hagiodex/hagiodex/internal/service"
)

// catalogFile is the seed document layout. Entries use the API's request
// shapes.
type catalogFile struct {
	Creatures []dto.CreateCreatureRequest `json:"creatures"`
	Saints    []dto.SaintRequest          `json:"saints"`
}

type output struct {
	CreaturesCreated int      `json:"creatures_created"`
	CreaturesSkipped int      `json:"creatures_skipped"`
	SaintsCreated    int      `json:"saints_created"`
	SaintsSkipped    int      `json:"saints_skipped"`
	Errors           []string `json:"errors,omitempty"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		file        = flag.String("file", "scripts/catalog.sample.json", "Catalog JSON file")
		format      = flag.String("format", "plain", "Output format: plain or json")
		timeout     = flag.Duration("timeout", 30*time.Second, "Overall timeout")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	catalog, err := readCatalog(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL, repository.Options{MaxConns: 2, MinConns: 1})
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "apply schema:", err)
		os.Exit(1)
	}

	recorder := metrics.NewNoop()
	out := seed(ctx, catalog,
		service.NewCreatureService(repo, recorder),
		service.NewSaintService(repo, recorder),
	)

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("creatures: %d created, %d skipped\n", out.CreaturesCreated, out.CreaturesSkipped)
		fmt.Printf("saints: %d created, %d skipped\n", out.SaintsCreated, out.SaintsSkipped)
		for _, msg := range out.Errors {
			fmt.Fprintln(os.Stderr, msg)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}

	if len(out.Errors) > 0 {
		os.Exit(1)
	}
}

func readCatalog(path string) (*catalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var catalog catalogFile
	if err := json.NewDecoder(f).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &catalog, nil
}

// seed inserts every entry through the services so the API's validation
// applies. Existing names are skipped, which makes reruns harmless.
func seed(ctx context.Context, catalog *catalogFile, creatures *service.CreatureService, saints *service.SaintService) output {
	var out output

	for _, c := range catalog.Creatures {
		_, err := creatures.CreateCreature(ctx, service.CreateCreatureInput{
			Name:    c.Name,
			Types:   c.Types,
			HP:      c.Stats.HP,
			Attack:  c.Stats.Attack,
			Defense: c.Stats.Defense,
		})
		switch {
		case err == nil:
			out.CreaturesCreated++
		case errors.Is(err, service.ErrCreatureExists):
			out.CreaturesSkipped++
		default:
			out.Errors = append(out.Errors, fmt.Sprintf("creature %q: %v", c.Name, err))
		}
	}

	for _, s := range catalog.Saints {
		name := ""
		if s.Name != nil {
			name = *s.Name
			if _, err := saints.GetSaint(ctx, name); err == nil {
				out.SaintsSkipped++
				continue
			}
		}

		_, err := saints.CreateSaint(ctx, service.SaintInput{
			Name:       s.Name,
			Patronage:  s.Patronage,
			FeastDay:   s.FeastDay,
			Veneration: s.Veneration,
			Birthplace: s.Birthplace,
			BirthDate:  s.BirthDate,
			DeathDate:  s.DeathDate,
			History:    s.History,
			Attributes: s.Attributes,
		})
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("saint %q: %v", name, err))
			continue
		}
		out.SaintsCreated++
	}

	return out
}
