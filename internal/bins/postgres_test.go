package bins_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JojoFlex1/done/internal/bins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binColumns = []string{"id", "name", "qr_code", "address", "latitude", "longitude", "status", "created_at"}

func TestPostgresFindActiveByQR(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d := bins.NewPostgresDirectory(db)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM bins WHERE qr_code = \$1 AND status = 'active'`).
		WithArgs("BIN-CENTRAL-001").
		WillReturnRows(sqlmock.NewRows(binColumns).
			AddRow("6f1b1d3a-7e34-4c53-9a5c-1d0c0f8c1a01", "Central Station", "BIN-CENTRAL-001", "1 Station Road", 6.455, 3.3841, "active", created))

	b, err := d.FindActiveByQR(context.Background(), "BIN-CENTRAL-001")
	require.NoError(t, err)
	assert.Equal(t, "Central Station", b.Name)
	assert.True(t, b.Latitude.Valid)
	assert.InDelta(t, 6.455, b.Latitude.Float64, 1e-9)

	mock.ExpectQuery(`SELECT .+ FROM bins WHERE qr_code = \$1`).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows(binColumns))

	_, err = d.FindActiveByQR(context.Background(), "unknown")
	require.ErrorIs(t, err, bins.ErrBinNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListActiveSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d := bins.NewPostgresDirectory(db)

	mock.ExpectQuery(`WHERE status = 'active' AND \(name ILIKE \$1 OR address ILIKE \$1\) AND \(name ILIKE \$2 OR address ILIKE \$2\) ORDER BY name ASC`).
		WithArgs("%central%", `%50\%%`).
		WillReturnRows(sqlmock.NewRows(binColumns).
			AddRow("6f1b1d3a-7e34-4c53-9a5c-1d0c0f8c1a01", "Central Station", "BIN-CENTRAL-001", "50% Road", nil, nil, "active", time.Now()))

	res, err := d.ListActive(context.Background(), "central 50%")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.False(t, res[0].Latitude.Valid)

	require.NoError(t, mock.ExpectationsWereMet())
}
