package bins

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDirectory keeps bins in process memory.
type MemoryDirectory struct {
	mu   sync.RWMutex
	bins map[string]*Bin
}

func NewMemoryDirectory(bins ...*Bin) *MemoryDirectory {
	d := &MemoryDirectory{bins: make(map[string]*Bin)}
	for _, b := range bins {
		_ = d.Upsert(context.Background(), b)
	}

	return d
}

func (d *MemoryDirectory) FindActiveByQR(_ context.Context, qrCode string) (*Bin, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, b := range d.bins {
		if b.QRCode == qrCode && b.Active() {
			cp := *b
			return &cp, nil
		}
	}

	return nil, ErrBinNotFound
}

func (d *MemoryDirectory) GetByID(_ context.Context, id string) (*Bin, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, ok := d.bins[id]
	if !ok {
		return nil, ErrBinNotFound
	}

	cp := *b
	return &cp, nil
}

func (d *MemoryDirectory) ListActive(_ context.Context, search string) ([]*Bin, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(search))

	res := make([]*Bin, 0, len(d.bins))
	for _, b := range d.bins {
		if !b.Active() || !matchesAll(b, terms) {
			continue
		}
		cp := *b
		res = append(res, &cp)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})

	return res, nil
}

func matchesAll(b *Bin, terms []string) bool {
	name := strings.ToLower(b.Name)
	address := strings.ToLower(b.Address)

	for _, t := range terms {
		if !strings.Contains(name, t) && !strings.Contains(address, t) {
			return false
		}
	}

	return true
}

func (d *MemoryDirectory) Nearby(ctx context.Context, lat float64, lng float64, radiusKm float64) ([]*NearbyBin, error) {
	active, err := d.ListActive(ctx, "")
	if err != nil {
		return nil, err
	}

	return filterNearby(active, lat, lng, radiusKm), nil
}

func (d *MemoryDirectory) Upsert(_ context.Context, b *Bin) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// qr_code is the conflict key, as in the postgres directory
	for id, existing := range d.bins {
		if existing.QRCode == b.QRCode {
			b.ID = id
			b.CreatedAt = existing.CreatedAt
			break
		}
	}

	if len(b.ID) == 0 {
		b.ID = uuid.NewString()
	}
	if len(b.Status) == 0 {
		b.Status = StatusActive
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	cp := *b
	d.bins[b.ID] = &cp

	return nil
}
