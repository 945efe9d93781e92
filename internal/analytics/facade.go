package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"ymcli/internal/config"
	"ymcli/internal/errors"
	"ymcli/internal/flows"
	"ymcli/internal/geography"
	"ymcli/internal/shocks"
	"ymcli/internal/spatial"
)

// Service is the analytics facade: it orchestrates weights
// construction, autocorrelation, flow clustering, and shock detection
// for a commodity/date selection.
type Service struct {
	cfg       *config.Config
	logger    *slog.Logger
	index     *geography.Index
	builder   *spatial.Builder
	engine    *spatial.Engine
	clusterer *flows.Clusterer
	detector  *shocks.Detector
	cache     *WeightsCache
	pool      *Pool
	metrics   *Metrics
	validate  *validator.Validate
}

// NewService creates the facade over the given geometry. A nil cache or
// metrics is allowed; the cache then comes from the configuration and
// instrumentation is disabled.
func NewService(cfg *config.Config, regions []geography.Region, cache *WeightsCache, metrics *Metrics, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Default()
		if err != nil {
			return nil, fmt.Errorf("build default config: %w", err)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewWeightsCache(cfg.Cache.MaxEntries, cfg.Cache.TTL, metrics)
	}

	return &Service{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "analytics_facade")),
		index:     geography.NewIndex(regions, logger),
		builder:   spatial.NewBuilder(logger),
		engine:    spatial.NewEngine(logger),
		clusterer: flows.NewClusterer(logger),
		detector:  shocks.NewDetector(cfg.Shocks, logger),
		cache:     cache,
		pool:      NewPool(cfg.MonteCarlo.Workers, metrics, logger),
		metrics:   metrics,
		validate:  validator.New(),
	}, nil
}

// Index exposes the normalized geometry index.
func (s *Service) Index() *geography.Index {
	return s.index
}

// Analyze runs the full analysis for one selection. Observations and
// flow edges referencing regions absent from the geometry are logged
// and skipped, never fatal. The four component computations run
// concurrently; results are value objects with no shared mutable state,
// so Analyze is safe to invoke in parallel for independent selections.
func (s *Service) Analyze(ctx context.Context, req Request, observations []PriceObservation, flowEdges []flows.FlowEdge) (*Result, error) {
	start := time.Now()

	if err := s.validate.Struct(req); err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "invalid analysis request", err)
	}

	mode := spatial.Mode(s.cfg.Spatial.WeightMode)
	if req.WeightMode != "" {
		mode = spatial.Mode(req.WeightMode)
	}
	bandwidth := s.cfg.Spatial.BandwidthKm
	if req.BandwidthKm > 0 {
		bandwidth = req.BandwidthKm
	}

	s.logger.InfoContext(ctx, "starting analysis",
		slog.String("commodity", req.Commodity),
		slog.String("weight_mode", string(mode)),
		slog.Float64("bandwidth_km", bandwidth),
		slog.Int("observations", len(observations)),
		slog.Int("flow_edges", len(flowEdges)),
	)

	series, skippedObs := s.aggregate(ctx, req, observations)
	edges, skippedEdges := s.resolveFlows(ctx, flowEdges)

	result := &Result{
		Commodity:      req.Commodity,
		GeneratedAt:    start.UTC(),
		PriceVector:    priceVector(series),
		SkippedRecords: skippedObs + skippedEdges,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer s.observe("autocorrelation", time.Now())

		rel, err := s.weightsFor(mode, bandwidth)
		if err != nil {
			return err
		}
		result.Weights = rel

		if req.UseMonteCarlo {
			slot := "moran:" + req.Commodity
			return s.pool.Run(gctx, slot, func(runCtx context.Context) error {
				global, err := s.engine.GlobalMoranMC(runCtx, result.PriceVector, rel, s.cfg.MonteCarlo.Iterations, s.cfg.MonteCarlo.Seed)
				if err != nil {
					return err
				}
				result.Global = global
				result.Local = s.engine.LocalMoran(result.PriceVector, rel)
				return nil
			})
		}

		result.Global = s.engine.GlobalMoran(result.PriceVector, rel)
		result.Local = s.engine.LocalMoran(result.PriceVector, rel)
		return nil
	})

	g.Go(func() error {
		defer s.observe("clustering", time.Now())
		result.Clusters = s.clusterer.Cluster(edges)
		return nil
	})

	g.Go(func() error {
		defer s.observe("shock_detection", time.Now())
		result.Shocks = s.detectAll(series)
		return nil
	})

	if err := g.Wait(); err != nil {
		if s.metrics != nil {
			s.metrics.Analyses.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Analyses.WithLabelValues("ok").Inc()
	}

	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("commodity", req.Commodity),
		slog.Duration("duration", time.Since(start)),
		slog.Int("regions", len(result.PriceVector)),
		slog.Int("clusters", len(result.Clusters)),
		slog.Int("shocks", len(result.Shocks)),
		slog.Int("skipped_records", result.SkippedRecords),
	)

	return result, nil
}

// aggregate filters the observations to the request window, resolves
// region names, and averages duplicates per region-month. Raw
// duplicate records and pre-aggregated input both collapse to one
// observation per region per month.
func (s *Service) aggregate(ctx context.Context, req Request, observations []PriceObservation) (map[string][]shocks.PricePoint, int) {
	type bucket struct {
		sum   float64
		count int
	}
	perRegion := make(map[string]map[time.Time]*bucket)
	skipped := 0

	for _, obs := range observations {
		month := truncateMonth(obs.Month)
		if !req.StartMonth.IsZero() && month.Before(truncateMonth(req.StartMonth)) {
			continue
		}
		if !req.EndMonth.IsZero() && month.After(truncateMonth(req.EndMonth)) {
			continue
		}

		id, known := s.index.Resolve(obs.Region)
		if !known {
			s.logger.WarnContext(ctx, "observation references unknown region, skipping",
				slog.String("region", obs.Region),
				slog.String("normalized", id),
			)
			skipped++
			continue
		}

		price := obs.USDPrice
		if price == 0 {
			price = obs.Price
		}

		if perRegion[id] == nil {
			perRegion[id] = make(map[time.Time]*bucket)
		}
		b := perRegion[id][month]
		if b == nil {
			b = &bucket{}
			perRegion[id][month] = b
		}
		b.sum += price
		b.count++
	}

	series := make(map[string][]shocks.PricePoint, len(perRegion))
	for id, months := range perRegion {
		points := make([]shocks.PricePoint, 0, len(months))
		for month, b := range months {
			points = append(points, shocks.PricePoint{
				Month:    month,
				AvgPrice: b.sum / float64(b.count),
			})
		}
		sort.Slice(points, func(i, j int) bool {
			return points[i].Month.Before(points[j].Month)
		})
		series[id] = points
	}

	return series, skipped
}

// resolveFlows normalizes flow endpoints and drops edges referencing
// regions absent from the geometry.
func (s *Service) resolveFlows(ctx context.Context, edges []flows.FlowEdge) ([]flows.FlowEdge, int) {
	out := make([]flows.FlowEdge, 0, len(edges))
	skipped := 0

	for _, e := range edges {
		src, srcOK := s.index.Resolve(e.Source)
		dst, dstOK := s.index.Resolve(e.Target)
		if !srcOK || !dstOK {
			s.logger.WarnContext(ctx, "flow edge references unknown region, skipping",
				slog.String("source", e.Source),
				slog.String("target", e.Target),
			)
			skipped++
			continue
		}
		e.Source = src
		e.Target = dst
		out = append(out, e)
	}

	return out, skipped
}

// priceVector reduces each region's monthly series to its window mean.
func priceVector(series map[string][]shocks.PricePoint) map[string]float64 {
	vector := make(map[string]float64, len(series))
	for id, points := range series {
		if len(points) == 0 {
			continue
		}
		var sum float64
		for _, p := range points {
			sum += p.AvgPrice
		}
		vector[id] = sum / float64(len(points))
	}
	return vector
}

// detectAll runs shock detection per region and returns events ordered
// by region, then month.
func (s *Service) detectAll(series map[string][]shocks.PricePoint) []shocks.Event {
	ids := make([]string, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var events []shocks.Event
	for _, id := range ids {
		events = append(events, s.detector.Detect(id, series[id])...)
	}
	return events
}

// weightsFor returns the cached weights relation for the current
// geometry, building and caching it on a miss.
func (s *Service) weightsFor(mode spatial.Mode, bandwidthKm float64) (spatial.Relation, error) {
	key := CacheKey(mode, bandwidthKm, s.index.IDs())
	if rel, ok := s.cache.Get(key); ok {
		return rel, nil
	}

	rel, err := s.builder.Build(s.index, mode, bandwidthKm)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, rel)
	return rel, nil
}

func (s *Service) observe(component string, start time.Time) {
	if s.metrics != nil {
		s.metrics.Duration.WithLabelValues(component).Observe(time.Since(start).Seconds())
	}
}
