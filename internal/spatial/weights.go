package spatial

import (
	"log/slog"

	"ymcli/internal/errors"
	"ymcli/internal/geography"
)

// Builder constructs spatial weights relations from region geometry.
type Builder struct {
	logger *slog.Logger

	// distance computes inter-region distance in kilometers; the
	// default asks the geometry index for haversine distances.
	distance func(ix *geography.Index, i, j string) (float64, bool)
}

// NewBuilder creates a weights builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger: logger.With(slog.String("component", "weights_builder")),
		distance: func(ix *geography.Index, i, j string) (float64, bool) {
			return ix.Distance(i, j)
		},
	}
}

// Build constructs the weights relation over the regions in the index.
//
// Binary mode links every distinct ordered pair with weight 1.
// Distance-decay mode links pairs with 0 < distance <= bandwidthKm at
// weight 1/distance; regions without centroids contribute no pairs and
// are logged. Fewer than two regions yields an empty relation.
func (b *Builder) Build(ix *geography.Index, mode Mode, bandwidthKm float64) (Relation, error) {
	rel := make(Relation)

	if ix == nil || ix.Len() < 2 {
		b.logger.Warn("fewer than two regions, returning empty relation")
		return rel, nil
	}

	ids := ix.IDs()

	switch mode {
	case ModeBinary:
		for _, i := range ids {
			for _, j := range ids {
				if i != j {
					rel.Add(i, j, 1)
				}
			}
		}

	case ModeDistanceDecay:
		if bandwidthKm <= 0 {
			return nil, errors.NewConfigError("spatial.bandwidth_km", bandwidthKm, "must be positive for distance-decay weights")
		}
		missing := 0
		for _, i := range ids {
			for _, j := range ids {
				if i == j {
					continue
				}
				d, ok := b.distance(ix, i, j)
				if !ok {
					missing++
					continue
				}
				if d > 0 && d <= bandwidthKm {
					rel.Add(i, j, 1/d)
				}
			}
		}
		if missing > 0 {
			b.logger.Warn("pairs skipped for missing centroids", slog.Int("pairs", missing))
		}

	default:
		return nil, errors.NewConfigError("spatial.weight_mode", string(mode), "unknown weight mode")
	}

	b.logger.Debug("weights relation built",
		slog.String("mode", string(mode)),
		slog.Int("regions", len(ids)),
		slog.Int("pairs", rel.PairCount()),
	)

	return rel, nil
}
