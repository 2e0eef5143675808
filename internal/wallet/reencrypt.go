package wallet

import (
	"context"

	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/pkg/errors"
)

// SeedStore is the part of identity.Repository that holds encrypted seeds.
type SeedStore interface {
	ListEncryptedSeeds(ctx context.Context) ([]*identity.SeedRecord, error)
	UpdateEncryptedSeed(ctx context.Context, userID string, previous string, next string) error
}

type ReencryptResult struct {
	Total    int
	Upgraded int
	Stale    int
}

// ReencryptAll rewrites every stored envelope that still uses an older scheme.
// Envelopes changed concurrently are counted as stale and left alone.
func ReencryptAll(ctx context.Context, store SeedStore, walletService Service) (*ReencryptResult, error) {
	log := util.LogFromContext(ctx).With().Str("component", "reencrypt").Logger()

	records, err := store.ListEncryptedSeeds(ctx)
	if err != nil {
		return nil, err
	}

	res := &ReencryptResult{Total: len(records)}

	for _, rec := range records {
		next, changed, err := walletService.ReencryptSeed(ctx, rec.EncryptedSeed)
		if err != nil {
			return res, errors.Wrapf(err, "failed to re-encrypt seed of user %s", rec.UserID)
		}
		if !changed {
			continue
		}

		if err := store.UpdateEncryptedSeed(ctx, rec.UserID, rec.EncryptedSeed, next); err != nil {
			if errors.Is(err, identity.ErrStaleSeed) {
				log.Warn().Str("user_id", rec.UserID).Msg("Seed changed while re-encrypting, skipping")
				res.Stale++
				continue
			}
			return res, err
		}

		res.Upgraded++
	}

	log.Info().Int("total", res.Total).Int("upgraded", res.Upgraded).Int("stale", res.Stale).Msg("Re-encrypted seeds")

	return res, nil
}
