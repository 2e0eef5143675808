package bins

import (
	"context"
	"database/sql"

	"github.com/JojoFlex1/done/internal/util/db"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const binColumns = `id, name, qr_code, address, latitude, longitude, status, created_at`

// PostgresDirectory reads bins from the bins table.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) FindActiveByQR(ctx context.Context, qrCode string) (*Bin, error) {
	return d.getOne(ctx, `SELECT `+binColumns+` FROM bins WHERE qr_code = $1 AND status = 'active'`, qrCode)
}

func (d *PostgresDirectory) GetByID(ctx context.Context, id string) (*Bin, error) {
	return d.getOne(ctx, `SELECT `+binColumns+` FROM bins WHERE id = $1`, id)
}

func (d *PostgresDirectory) getOne(ctx context.Context, query string, arg string) (*Bin, error) {
	var b Bin
	if err := queries.Raw(query, arg).Bind(ctx, d.db, &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBinNotFound
		}
		return nil, errors.Wrap(err, "failed to load bin")
	}

	return &b, nil
}

func (d *PostgresDirectory) ListActive(ctx context.Context, search string) ([]*Bin, error) {
	query := `SELECT ` + binColumns + ` FROM bins WHERE status = 'active'`

	patterns := db.ILikeSearch(search)
	args := make([]any, 0, len(patterns))
	if len(patterns) > 0 {
		query += ` AND ` + db.ILikeClause(1, len(patterns), "name", "address")
		for _, p := range patterns {
			args = append(args, p)
		}
	}
	query += ` ORDER BY name ASC`

	var res []*Bin
	if err := queries.Raw(query, args...).Bind(ctx, d.db, &res); err != nil {
		return nil, errors.Wrap(err, "failed to list bins")
	}

	return res, nil
}

// Nearby prefilters with a bounding box in SQL and applies the exact distance in Go.
func (d *PostgresDirectory) Nearby(ctx context.Context, lat float64, lng float64, radiusKm float64) ([]*NearbyBin, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	minLat, maxLat, minLng, maxLng := boundingBox(lat, lng, radiusKm)

	var candidates []*Bin
	err := queries.Raw(`SELECT `+binColumns+` FROM bins
		WHERE status = 'active'
			AND latitude BETWEEN $1 AND $2
			AND longitude BETWEEN $3 AND $4`,
		minLat, maxLat, minLng, maxLng).Bind(ctx, d.db, &candidates)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list nearby bins")
	}

	return filterNearby(candidates, lat, lng, radiusKm), nil
}

func (d *PostgresDirectory) Upsert(ctx context.Context, b *Bin) error {
	if len(b.ID) == 0 {
		b.ID = uuid.NewString()
	}
	if len(b.Status) == 0 {
		b.Status = StatusActive
	}

	err := d.db.QueryRowContext(ctx, `
		INSERT INTO bins (id, name, qr_code, address, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (qr_code) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			status = EXCLUDED.status
		RETURNING id, created_at`,
		b.ID, b.Name, b.QRCode, b.Address, b.Latitude, b.Longitude, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to upsert bin")
	}

	return nil
}
