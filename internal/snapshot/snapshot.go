// Package snapshot reads pond histories from YAML files so the analytics
// engine can run without a database.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

// Timestamps with a clock time are precise; bare dates are not.
var (
	preciseLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"}
	dateLayout     = "2006-01-02"
)

type file struct {
	Pond       pondRecord         `yaml:"pond"`
	Population []populationRecord `yaml:"population"`
	Feed       []feedRecord       `yaml:"feed"`
	Harvests   []harvestRecord    `yaml:"harvests"`
	Expenses   []expenseRecord    `yaml:"expenses"`
	Samples    []sampleRecord     `yaml:"samples"`
	Stock      []stockRecord      `yaml:"stock"`
}

type pondRecord struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Length     float64 `yaml:"length"`
	Width      float64 `yaml:"width"`
	Depth      float64 `yaml:"depth"`
	Population int     `yaml:"population"`
}

type populationRecord struct {
	Date        string `yaml:"date"`
	Created     string `yaml:"created"`
	Delta       int    `yaml:"delta"`
	Total       int    `yaml:"total"`
	Kind        string `yaml:"kind"`
	Description string `yaml:"description"`
}

type feedRecord struct {
	Date     string  `yaml:"date"`
	Created  string  `yaml:"created"`
	Kg       float64 `yaml:"kg"`
	FeedType string  `yaml:"feed_type"`
}

type harvestRecord struct {
	Date       string  `yaml:"date"`
	Created    string  `yaml:"created"`
	Kg         float64 `yaml:"kg"`
	Count      int     `yaml:"count"`
	PricePerKg float64 `yaml:"price_per_kg"`
	Type       string  `yaml:"type"`
}

type expenseRecord struct {
	Date        string  `yaml:"date"`
	Created     string  `yaml:"created"`
	Farm        bool    `yaml:"farm"`
	Category    string  `yaml:"category"`
	Amount      float64 `yaml:"amount"`
	Description string  `yaml:"description"`
}

type sampleRecord struct {
	Date      string  `yaml:"date"`
	FishPerKg float64 `yaml:"fish_per_kg"`
	Note      string  `yaml:"note"`
}

type stockRecord struct {
	Date       string  `yaml:"date"`
	FeedType   string  `yaml:"feed_type"`
	Kind       string  `yaml:"kind"`
	QuantityKg float64 `yaml:"quantity_kg"`
	UnitPrice  float64 `yaml:"unit_price"`
}

// Load reads a snapshot file. Times without an offset are read in loc.
func Load(path string, loc *time.Location) (models.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f, loc)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Decode parses a snapshot document. Unknown fields are rejected.
func Decode(r io.Reader, loc *time.Location) (models.Snapshot, error) {
	if loc == nil {
		loc = time.UTC
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Snapshot{}, errors.New("empty snapshot")
		}
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	p := &parser{loc: loc}
	snap := doc.toModel(p)
	if p.err != nil {
		return models.Snapshot{}, p.err
	}
	if snap.Pond.ID == "" {
		return models.Snapshot{}, errors.New("pond.id is required")
	}
	return snap, nil
}

func (doc file) toModel(p *parser) models.Snapshot {
	id := strings.ToLower(strings.TrimSpace(doc.Pond.ID))
	snap := models.Snapshot{
		Pond: models.Pond{
			ID:         id,
			Name:       doc.Pond.Name,
			Length:     doc.Pond.Length,
			Width:      doc.Pond.Width,
			Depth:      doc.Pond.Depth,
			Population: doc.Pond.Population,
		},
	}

	for i, r := range doc.Population {
		snap.Population = append(snap.Population, models.PopulationEvent{
			ID:          fmt.Sprintf("population-%d", i+1),
			PondID:      id,
			Date:        p.date("population", i, r.Date),
			Delta:       r.Delta,
			Total:       r.Total,
			Kind:        models.PopulationKind(r.Kind),
			Description: r.Description,
			Created:     p.stamp("population", i, r.Created),
		})
	}
	for i, r := range doc.Feed {
		snap.Feed = append(snap.Feed, models.FeedEvent{
			ID:       fmt.Sprintf("feed-%d", i+1),
			PondID:   id,
			Date:     p.date("feed", i, r.Date),
			Kg:       r.Kg,
			FeedType: r.FeedType,
			Created:  p.stamp("feed", i, r.Created),
		})
	}
	for i, r := range doc.Harvests {
		snap.Harvests = append(snap.Harvests, models.HarvestEvent{
			ID:         fmt.Sprintf("harvest-%d", i+1),
			PondID:     id,
			Date:       p.date("harvests", i, r.Date),
			Kg:         r.Kg,
			Count:      r.Count,
			PricePerKg: r.PricePerKg,
			Type:       models.HarvestType(r.Type),
			Created:    p.stamp("harvests", i, r.Created),
		})
	}
	for i, r := range doc.Expenses {
		pondID := id
		if r.Farm {
			pondID = ""
		}
		category, ok := models.ParseExpenseCategory(r.Category)
		if !ok {
			category = models.ExpenseOther
		}
		snap.Expenses = append(snap.Expenses, models.ExpenseEvent{
			ID:          fmt.Sprintf("expense-%d", i+1),
			PondID:      pondID,
			Date:        p.date("expenses", i, r.Date),
			Category:    category,
			Amount:      r.Amount,
			Description: r.Description,
			Created:     p.stamp("expenses", i, r.Created),
		})
	}
	for i, r := range doc.Samples {
		snap.Samples = append(snap.Samples, models.BiomassSample{
			ID:        fmt.Sprintf("sample-%d", i+1),
			PondID:    id,
			Date:      p.date("samples", i, r.Date),
			FishPerKg: r.FishPerKg,
			Note:      r.Note,
		})
	}
	for i, r := range doc.Stock {
		snap.Stock = append(snap.Stock, models.StockMovement{
			Date:       p.date("stock", i, r.Date),
			FeedType:   r.FeedType,
			Kind:       models.StockMovementKind(r.Kind),
			QuantityKg: r.QuantityKg,
			UnitPrice:  r.UnitPrice,
		})
	}

	return snap
}

// parser keeps the first time parsing error.
type parser struct {
	loc *time.Location
	err error
}

func (p *parser) date(section string, i int, value string) time.Time {
	t, _, err := parseTime(value, p.loc)
	if err != nil {
		p.fail(section, i, err)
		return time.Time{}
	}
	return models.DateOf(t)
}

func (p *parser) stamp(section string, i int, value string) models.Stamp {
	if strings.TrimSpace(value) == "" {
		return models.Stamp{}
	}
	t, precise, err := parseTime(value, p.loc)
	if err != nil {
		p.fail(section, i, err)
		return models.Stamp{}
	}
	if !precise {
		return models.On(t)
	}
	return models.At(t)
}

func (p *parser) fail(section string, i int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s[%d]: %w", section, i, err)
	}
}

func parseTime(value string, loc *time.Location) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, errors.New("missing date")
	}
	for _, layout := range preciseLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true, nil
		}
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q", value)
	}
	return t, false, nil
}
