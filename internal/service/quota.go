package service

import (
	"context"
	"math"

	"vaultapi/internal/config"
	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// UsageStats is the storage view returned on the profile endpoint.
type UsageStats struct {
	FileCount      int                `json:"fileCount"`
	StorageUsedMB  float64            `json:"storageUsed"`
	StorageLimit   model.StorageLimit `json:"storageLimit"`
	StoragePercent float64            `json:"storagePercent"`
}

// QuotaCalculator derives storage usage and percent-to-limit from the vault's
// item metadata, gated by the user's tier. Usage is an aggregate over exact
// byte counts; no cached accounting, which is fine at the item counts a single
// vault holds.
type QuotaCalculator struct {
	items repository.ItemRepository
	cfg   config.QuotaConfig
}

// NewQuotaCalculator constructs a QuotaCalculator.
func NewQuotaCalculator(items repository.ItemRepository, cfg config.QuotaConfig) *QuotaCalculator {
	return &QuotaCalculator{items: items, cfg: cfg}
}

// LimitFor resolves the storage ceiling for a tier. Enterprise is unlimited;
// the bounded tiers come from configuration so each has a single source of
// truth.
func (q *QuotaCalculator) LimitFor(tier model.Tier) model.StorageLimit {
	switch tier {
	case model.TierProfessional:
		return model.Bounded(q.cfg.ProfessionalLimitMB)
	case model.TierEnterprise:
		return model.UnlimitedLimit
	default:
		return model.Bounded(q.cfg.PersonalLimitMB)
	}
}

// ComputeUsage sums the exact size of every non-folder item the user owns and
// reports it against the tier's ceiling.
func (q *QuotaCalculator) ComputeUsage(ctx context.Context, userID string, tier model.Tier) (UsageStats, error) {
	usage, err := q.items.Usage(ctx, userID)
	if err != nil {
		return UsageStats{}, err
	}

	usedMB := float64(usage.TotalBytes) / (1024 * 1024)
	limit := q.LimitFor(tier)

	return UsageStats{
		FileCount:      usage.FileCount,
		StorageUsedMB:  math.Round(usedMB*100) / 100,
		StorageLimit:   limit,
		StoragePercent: limit.Percent(usedMB),
	}, nil
}
