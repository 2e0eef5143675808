package data

import (
	"context"

	"github.com/JojoFlex1/done/internal/bins"
	"github.com/aarondl/null/v8"
	"github.com/pkg/errors"
)

// Upsertable is a store fixtures can be written to repeatedly without duplicates.
type Upsertable interface {
	Upsert(ctx context.Context, bin *bins.Bin) error
}

// FixtureMap holds the seed bins by name.
type FixtureMap struct {
	BinLagosMall      *bins.Bin
	BinUnilagCampus   *bins.Bin
	BinIkejaMarket    *bins.Bin
	BinAbujaCentral   *bins.Bin
	BinDecommissioned *bins.Bin
}

// Fixtures returns fresh copies of the seed bins. QR codes are stable, ids are assigned on upsert.
func Fixtures() FixtureMap {
	return FixtureMap{
		BinLagosMall: &bins.Bin{
			Name:      "Lagos Mall Drop-off",
			QRCode:    "QR_BIN001",
			Address:   "Lekki Phase 1, Lagos",
			Latitude:  null.Float64From(6.4474),
			Longitude: null.Float64From(3.4700),
			Status:    bins.StatusActive,
		},
		BinUnilagCampus: &bins.Bin{
			Name:      "UNILAG Campus Bin",
			QRCode:    "QR_BIN002",
			Address:   "University of Lagos, Akoka",
			Latitude:  null.Float64From(6.5158),
			Longitude: null.Float64From(3.3898),
			Status:    bins.StatusActive,
		},
		BinIkejaMarket: &bins.Bin{
			Name:      "Ikeja Computer Village",
			QRCode:    "QR_BIN003",
			Address:   "Otigba Street, Ikeja, Lagos",
			Latitude:  null.Float64From(6.5966),
			Longitude: null.Float64From(3.3421),
			Status:    bins.StatusActive,
		},
		BinAbujaCentral: &bins.Bin{
			Name:      "Abuja Central Collection Point",
			QRCode:    "QR_BIN004",
			Address:   "Central Business District, Abuja",
			Latitude:  null.Float64From(9.0579),
			Longitude: null.Float64From(7.4951),
			Status:    bins.StatusActive,
		},
		BinDecommissioned: &bins.Bin{
			Name:    "Old Yaba Bin",
			QRCode:  "QR_BIN900",
			Address: "Herbert Macaulay Way, Yaba, Lagos",
			Status:  bins.StatusInactive,
		},
	}
}

// Bins lists the fixtures in a stable order.
func (f FixtureMap) Bins() []*bins.Bin {
	return []*bins.Bin{
		f.BinLagosMall,
		f.BinUnilagCampus,
		f.BinIkejaMarket,
		f.BinAbujaCentral,
		f.BinDecommissioned,
	}
}

// Upsert writes all fixtures to store and returns how many were written.
func Upsert(ctx context.Context, store Upsertable, f FixtureMap) (int, error) {
	all := f.Bins()
	for _, b := range all {
		if err := store.Upsert(ctx, b); err != nil {
			return 0, errors.Wrapf(err, "failed to upsert bin fixture %s", b.QRCode)
		}
	}

	return len(all), nil
}
