package bins

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/pkg/errors"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	DefaultNearbyRadiusKm = 5.0
)

var ErrBinNotFound = errors.New("bin not found")

// Bin is a QR-tagged drop-off point.
type Bin struct {
	ID        string       `boil:"id"`
	Name      string       `boil:"name"`
	QRCode    string       `boil:"qr_code"`
	Address   string       `boil:"address"`
	Latitude  null.Float64 `boil:"latitude"`
	Longitude null.Float64 `boil:"longitude"`
	Status    string       `boil:"status"`
	CreatedAt time.Time    `boil:"created_at"`
}

func (b *Bin) Active() bool {
	return b.Status == StatusActive
}

// NearbyBin is a bin with its great-circle distance from the search origin.
type NearbyBin struct {
	Bin
	DistanceKm float64
}

// Directory looks up drop-off bins.
type Directory interface {
	// FindActiveByQR returns ErrBinNotFound for unknown or inactive bins.
	FindActiveByQR(ctx context.Context, qrCode string) (*Bin, error)
	GetByID(ctx context.Context, id string) (*Bin, error)
	// ListActive filters by name or address when search is not empty.
	ListActive(ctx context.Context, search string) ([]*Bin, error)
	// Nearby returns active bins within radiusKm, closest first.
	Nearby(ctx context.Context, lat float64, lng float64, radiusKm float64) ([]*NearbyBin, error)
	Upsert(ctx context.Context, bin *Bin) error
}
