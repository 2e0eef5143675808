package catalog

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownWasteType = errors.New("unknown waste type")

	//go:embed catalog.toml
	defaultData []byte
)

// Entry is a single waste type and its fixed reward.
type Entry struct {
	WasteType string `toml:"waste_type"`
	Points    int64  `toml:"points"`
	Category  string `toml:"category"`
}

// AdaAmount is the ADA equivalent of the entry's points.
func (e Entry) AdaAmount() decimal.Decimal {
	return AdaAmount(e.Points)
}

// Catalog is immutable once loaded and safe for concurrent use.
type Catalog struct {
	entries map[string]Entry
	sorted  []Entry
}

type document struct {
	Entries []Entry `toml:"entry"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultData)
	if err != nil {
		panic(errors.Wrap(err, "embedded waste catalog is invalid"))
	}

	return c
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse waste catalog")
	}

	return New(doc.Entries)
}

func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]Entry, len(entries)),
		sorted:  make([]Entry, 0, len(entries)),
	}

	for _, e := range entries {
		if len(e.WasteType) == 0 {
			return nil, errors.New("waste catalog entry without waste_type")
		}
		if e.Points <= 0 {
			return nil, errors.Errorf("waste catalog entry %q has non-positive points", e.WasteType)
		}
		if _, ok := c.entries[strings.ToLower(e.WasteType)]; ok {
			return nil, errors.Errorf("duplicate waste catalog entry %q", e.WasteType)
		}

		c.entries[strings.ToLower(e.WasteType)] = e
		c.sorted = append(c.sorted, e)
	}

	sort.Slice(c.sorted, func(i, j int) bool {
		if c.sorted[i].Points != c.sorted[j].Points {
			return c.sorted[i].Points < c.sorted[j].Points
		}
		return c.sorted[i].WasteType < c.sorted[j].WasteType
	})

	return c, nil
}

// Lookup returns the entry for wasteType. Matching is case-insensitive.
func (c *Catalog) Lookup(wasteType string) (Entry, error) {
	e, ok := c.entries[strings.ToLower(strings.TrimSpace(wasteType))]
	if !ok {
		return Entry{}, ErrUnknownWasteType
	}

	return e, nil
}

// List returns all entries ordered by points, then waste type.
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.sorted))
	copy(out, c.sorted)

	return out
}

// AdaAmount converts points to ADA. Points are lovelace denominated.
func AdaAmount(points int64) decimal.Decimal {
	return wallet.LovelaceToAda(points)
}
