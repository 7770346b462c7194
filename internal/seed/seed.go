package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed campus.yaml
var defaultDataset []byte

// Dataset is the seed document: one list per collection, records without ids.
type Dataset struct {
	Schedules  []records.Schedule     `yaml:"schedules"`
	Facilities []records.Facility     `yaml:"facilities"`
	Dining     []records.DiningOption `yaml:"dining"`
	Library    []records.LibraryItem  `yaml:"library"`
	Admin      []records.AdminOffice  `yaml:"admin"`
}

func (d *Dataset) Total() int {
	return len(d.Schedules) + len(d.Facilities) + len(d.Dining) + len(d.Library) + len(d.Admin)
}

type Inserter interface {
	InsertSchedule(ctx context.Context, s records.Schedule) (int64, error)
	InsertFacility(ctx context.Context, f records.Facility) (int64, error)
	InsertDining(ctx context.Context, d records.DiningOption) (int64, error)
	InsertLibrary(ctx context.Context, l records.LibraryItem) (int64, error)
	InsertAdmin(ctx context.Context, a records.AdminOffice) (int64, error)
}

type Store interface {
	Inserter
	Count(ctx context.Context) (int64, error)
}

// Load reads the dataset at path, or the embedded default when path is empty.
func Load(path string) (*Dataset, error) {
	data := defaultDataset
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	return Parse(data)
}

func Parse(data []byte) (*Dataset, error) {
	var dataset Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	for i := range dataset.Library {
		dataset.Library[i].Status = records.ParseLibraryStatus(string(dataset.Library[i].Status))
	}
	return &dataset, nil
}

// Apply inserts the dataset when the store holds no records. It reports whether anything was inserted.
func Apply(ctx context.Context, store Store, dataset *Dataset, logger *zerolog.Logger) (bool, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count records: %w", err)
	}

	if count > 0 {
		logger.Debug().Int64("records", count).Msg("Store already seeded")
		return false, nil
	}

	if err := Insert(ctx, store, dataset); err != nil {
		return false, err
	}

	logger.Info().Int("records", dataset.Total()).Msg("Seed data applied")
	return true, nil
}

// Insert writes every record of the dataset, one statement per record.
func Insert(ctx context.Context, store Inserter, dataset *Dataset) error {
	if err := insertAll(ctx, dataset.Schedules, store.InsertSchedule); err != nil {
		return err
	}
	if err := insertAll(ctx, dataset.Facilities, store.InsertFacility); err != nil {
		return err
	}
	if err := insertAll(ctx, dataset.Dining, store.InsertDining); err != nil {
		return err
	}
	if err := insertAll(ctx, dataset.Library, store.InsertLibrary); err != nil {
		return err
	}
	return insertAll(ctx, dataset.Admin, store.InsertAdmin)
}

func insertAll[T any](ctx context.Context, items []T, insert func(context.Context, T) (int64, error)) error {
	for _, item := range items {
		if _, err := insert(ctx, item); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
	}
	return nil
}
