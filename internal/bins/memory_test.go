package bins_test

import (
	"context"
	"testing"

	"github.com/JojoFlex1/done/internal/bins"
	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBins() []*bins.Bin {
	return []*bins.Bin{
		{
			ID:        "6f1b1d3a-7e34-4c53-9a5c-1d0c0f8c1a01",
			Name:      "Central Station",
			QRCode:    "BIN-CENTRAL-001",
			Address:   "1 Station Road, Lagos",
			Latitude:  null.Float64From(6.4550),
			Longitude: null.Float64From(3.3841),
		},
		{
			ID:        "6f1b1d3a-7e34-4c53-9a5c-1d0c0f8c1a02",
			Name:      "University Library",
			QRCode:    "BIN-UNILAG-002",
			Address:   "Akoka, Lagos",
			Latitude:  null.Float64From(6.5158),
			Longitude: null.Float64From(3.3898),
		},
		{
			ID:      "6f1b1d3a-7e34-4c53-9a5c-1d0c0f8c1a03",
			Name:    "Closed Market",
			QRCode:  "BIN-MARKET-003",
			Address: "Market Street, Lagos",
			Status:  bins.StatusInactive,
		},
		{
			ID:        "6f1b1d3a-7e34-4c53-9a5c-1d0c0f8c1a04",
			Name:      "Abuja Mall",
			QRCode:    "BIN-ABUJA-004",
			Address:   "Wuse II, Abuja",
			Latitude:  null.Float64From(9.0765),
			Longitude: null.Float64From(7.3986),
		},
	}
}

func TestMemoryFindActiveByQR(t *testing.T) {
	ctx := context.Background()
	d := bins.NewMemoryDirectory(testBins()...)

	b, err := d.FindActiveByQR(ctx, "BIN-CENTRAL-001")
	require.NoError(t, err)
	assert.Equal(t, "Central Station", b.Name)
	assert.True(t, b.Active())

	_, err = d.FindActiveByQR(ctx, "BIN-MARKET-003")
	require.ErrorIs(t, err, bins.ErrBinNotFound)

	_, err = d.FindActiveByQR(ctx, "nope")
	require.ErrorIs(t, err, bins.ErrBinNotFound)
}

func TestMemoryListActive(t *testing.T) {
	ctx := context.Background()
	d := bins.NewMemoryDirectory(testBins()...)

	all, err := d.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Abuja Mall", all[0].Name)

	res, err := d.ListActive(ctx, "lagos")
	require.NoError(t, err)
	require.Len(t, res, 2)

	res, err = d.ListActive(ctx, "LAGOS library")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "University Library", res[0].Name)

	res, err = d.ListActive(ctx, "market")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestMemoryNearby(t *testing.T) {
	ctx := context.Background()
	d := bins.NewMemoryDirectory(testBins()...)

	res, err := d.Nearby(ctx, 6.4550, 3.3841, 10)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Central Station", res[0].Name)
	assert.InDelta(t, 0, res[0].DistanceKm, 0.001)
	assert.Equal(t, "University Library", res[1].Name)
	assert.InDelta(t, 6.8, res[1].DistanceKm, 0.2)

	res, err = d.Nearby(ctx, 6.4550, 3.3841, 0)
	require.NoError(t, err)
	require.Len(t, res, 1)

	res, err = d.Nearby(ctx, 6.4550, 3.3841, 1000)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "Abuja Mall", res[2].Name)
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, bins.HaversineKm(52.52, 13.405, 52.52, 13.405), 1e-9)
	// Berlin to Paris
	assert.InDelta(t, 878, bins.HaversineKm(52.5200, 13.4050, 48.8566, 2.3522), 5)
}
