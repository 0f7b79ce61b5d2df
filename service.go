// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hansard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/hansard/ai"
	"github.com/poiesic/hansard/ai/cache"
	"github.com/poiesic/hansard/ai/openai"
	"github.com/poiesic/hansard/catalog"
	"github.com/poiesic/hansard/config"
	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/explore"
	"github.com/poiesic/hansard/fuzzy"
	"github.com/poiesic/hansard/sampler"
	"github.com/poiesic/hansard/search"
	"github.com/poiesic/hansard/server"
	"github.com/poiesic/hansard/storage/sqlstore"
)

// ErrConfigRequired is returned by NewService when cfg is nil.
var ErrConfigRequired = errors.New("config is required")

// Service wires the catalog, embedder, speech store and explorer together
// and owns their lifecycles.
type Service struct {
	cfg       *config.Config
	provider  ai.AIProvider
	cache     *cache.Embedder
	catalog   *catalog.Catalog
	store     *sqlstore.Store
	retriever *search.Retriever
	resolver  *fuzzy.Resolver
	choices   *explore.Choices
	explorer  *explore.Explorer
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	provider ai.AIProvider
	store    *sqlstore.Store
	logger   *slog.Logger
}

// WithProvider supplies the embedding provider instead of building an
// OpenAI-compatible one from the config. The service takes ownership.
func WithProvider(p ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = p
	}
}

// WithStore supplies an open speech store instead of opening the configured
// database URL. The service takes ownership.
func WithStore(s *sqlstore.Store) ServiceOption {
	return func(o *serviceOptions) {
		o.store = s
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService builds a ready-to-query service from cfg. A catalog that cannot
// be loaded fails construction with catalog.ErrCatalogLoad.
func NewService(ctx context.Context, cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	options := &serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{cfg: cfg, logger: options.logger}
	if err := s.init(ctx, options); err != nil {
		if closeErr := s.Close(); closeErr != nil {
			s.logger.Error("error releasing partially built service", "err", closeErr)
		}
		// close supplied collaborators the service never took over
		if s.provider == nil && options.provider != nil {
			options.provider.Close()
		}
		if s.store == nil && options.store != nil {
			options.store.Close()
		}
		return nil, err
	}
	return s, nil
}

func (s *Service) init(ctx context.Context, options *serviceOptions) error {
	cfg := s.cfg

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	s.catalog = cat
	s.logger.Info("loaded topic catalog", "topics", cat.Len(), "dimension", cat.Dimension())

	s.provider = options.provider
	if s.provider == nil {
		s.provider, err = openai.NewProvider(cfg.AI())
		if err != nil {
			return fmt.Errorf("creating embedding provider: %w", err)
		}
	}

	var embedder ai.Embedder = s.provider.Embedder()
	if dir := cfg.Embedding.CacheDir; dir != "" {
		s.cache, err = cache.New(embedder, dir,
			cache.WithModel(cfg.Embedding.Model),
			cache.WithLogger(s.logger))
		if err != nil {
			return fmt.Errorf("opening embedding cache: %w", err)
		}
		embedder = s.cache
	}

	s.retriever, err = search.NewRetriever(cat, embedder, search.WithLogger(s.logger))
	if err != nil {
		return err
	}

	s.store = options.store
	if s.store == nil {
		s.store, err = sqlstore.Open(cfg.Database.URL,
			sqlstore.WithQueryTimeout(cfg.Database.QueryTimeout),
			sqlstore.WithLogger(s.logger))
		if err != nil {
			return fmt.Errorf("opening speech store: %w", err)
		}
	}

	s.choices, err = explore.LoadChoices(ctx, s.store, cfg.Database.Table)
	if err != nil {
		return err
	}

	smp, err := sampler.New(s.store,
		sampler.WithRowCap(cfg.Sampling.RowCap),
		sampler.WithSampleSize(cfg.Sampling.SampleSize),
		sampler.WithLogger(s.logger))
	if err != nil {
		return err
	}

	s.resolver, err = fuzzy.NewResolver(
		fuzzy.WithLimit(cfg.Names.Limit),
		fuzzy.WithThresholds(cfg.Names.HighThreshold, cfg.Names.LowThreshold))
	if err != nil {
		return err
	}

	exploreOpts := []explore.Option{
		explore.WithLogger(s.logger),
		explore.WithTable(cfg.Database.Table),
		explore.WithTopN(cfg.Catalog.TopN),
	}
	if mode, _ := explore.ParseNameMode(cfg.Names.Mode); mode == explore.NameFuzzy {
		exploreOpts = append(exploreOpts, explore.WithFuzzyNames(s.resolver, s.choices.Names))
	}
	s.explorer, err = explore.New(s.retriever, cat, smp, exploreOpts...)
	return err
}

// Close releases every resource the service owns.
func (s *Service) Close() error {
	var errs []error
	if s.retriever != nil {
		s.retriever.Release()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("error closing speech store", "err", err)
			errs = append(errs, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing embedding cache", "err", err)
			errs = append(errs, err)
		}
	}
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) Explorer() *explore.Explorer {
	return s.explorer
}

func (s *Service) Retriever() *search.Retriever {
	return s.retriever
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) Resolver() *fuzzy.Resolver {
	return s.resolver
}

// Choices returns the selectable filter values read at startup.
func (s *Service) Choices() *explore.Choices {
	return s.choices
}

// Explore runs one request through the explorer.
func (s *Service) Explore(ctx context.Context, req core.Request) (*explore.Result, error) {
	return s.explorer.Explore(ctx, req)
}

// NewServer builds the HTTP surface over this service.
func (s *Service) NewServer(opts ...server.Option) (*server.Server, error) {
	opts = append([]server.Option{server.WithLogger(s.logger)}, opts...)
	return server.New(server.Dependencies{
		Explorer: s.explorer,
		Topics:   s.retriever,
		Keywords: s.catalog,
		Names:    s.resolver,
		Choices:  s.choices,
	}, opts...)
}
