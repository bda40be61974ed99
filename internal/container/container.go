// Package container wires the application together with samber/do.
// Each *Package function registers the providers for one concern;
// binaries compose the packages they need.
package container

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/younesh11/url-shortner/internal/analytics"
	analyticsstore "github.com/younesh11/url-shortner/internal/analytics/store"
	"github.com/younesh11/url-shortner/internal/handlers"
	"github.com/younesh11/url-shortner/internal/health"
	"github.com/younesh11/url-shortner/internal/messaging"
	"github.com/younesh11/url-shortner/internal/middleware"
	"github.com/younesh11/url-shortner/internal/ratelimit"
	"github.com/younesh11/url-shortner/internal/shortener"
	"github.com/younesh11/url-shortner/internal/store"
)

// Postgres wraps the pgx pool so the container can shut it down.
type Postgres struct {
	Pool *pgxpool.Pool
}

// Shutdown closes all pooled connections.
func (p *Postgres) Shutdown() error {
	p.Pool.Close()

	return nil
}

// Redis wraps the redis client so the container can shut it down.
type Redis struct {
	Client *redis.Client
}

// Shutdown closes the client.
func (r *Redis) Shutdown() error {
	return r.Client.Close()
}

// LoggerPackage registers the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage registers the redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Redis, error) {
		options := do.MustInvoke[*Options](i)

		return &Redis{Client: redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		})}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		return do.MustInvoke[*Redis](i).Client, nil
	})
}

// PostgresPackage registers the pgx connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Postgres, error) {
		options := do.MustInvoke[*Options](i)

		pool, err := pgxpool.New(context.Background(), options.DatabaseURL)
		if err != nil {
			return nil, err
		}

		return &Postgres{Pool: pool}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		return do.MustInvoke[*Postgres](i).Pool, nil
	})
}

// RepositoryPackage registers the link repository: PostgreSQL behind a
// Redis read cache.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		options := do.MustInvoke[*Options](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)
		client := do.MustInvoke[*redis.Client](i)

		pg := store.NewPostgresStore(pool)
		ttl := time.Duration(options.CacheTTL) * time.Second

		return store.NewRedisCacheRepository(pg, client, ttl), nil
	})
}

// ShortenerPackage registers the code generator, strategies, service,
// and the expired-link janitor.
func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		options := do.MustInvoke[*Options](i)
		repo := do.MustInvoke[shortener.Repository](i)

		generator, err := shortener.NewCodeGenerator(options.CodeLength)
		if err != nil {
			return nil, err
		}

		sequence, err := shortener.NewSequenceStrategy(repo, int64(options.SnowflakeNode))
		if err != nil {
			return nil, err
		}

		strategies := map[shortener.StrategyName]shortener.Strategy{
			shortener.StrategyRandom:   shortener.NewRandomStrategy(repo, generator),
			shortener.StrategyHash:     shortener.NewHashStrategy(repo, generator),
			shortener.StrategySequence: sequence,
		}

		return shortener.NewService(repo, strategies), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Janitor, error) {
		options := do.MustInvoke[*Options](i)
		repo := do.MustInvoke[shortener.Repository](i)
		logger := do.MustInvoke[*zap.Logger](i)

		interval := time.Duration(options.JanitorInterval) * time.Second

		return shortener.NewJanitor(repo, interval, logger), nil
	})
}

// RateLimitPackage registers the policy limiter over a Redis-backed store.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		options := do.MustInvoke[*Options](i)
		client := do.MustInvoke[*redis.Client](i)

		policy := ratelimit.DefaultPolicy(int64(options.RateLimitPerMin))

		return ratelimit.NewPolicyLimiter(store.NewRateLimitRedisStore(client), policy), nil
	})
}

// PublisherGroupPackage registers the analytics publisher over redis streams.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, messaging.NewZapLoggerAdapter(logger))
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkVisitedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkVisitedEvent](group.Publisher(), analytics.TopicLinkVisited), nil
	})
}

// AnalyticsStorePackage registers the analytics event store.
// With a database configured events are persisted and click counts
// updated; otherwise they are only logged.
func AnalyticsStorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		options := do.MustInvoke[*Options](i)

		if options.DatabaseURL == "" {
			logger := do.MustInvoke[*zap.Logger](i)

			return analyticsstore.NewNoop(logger), nil
		}

		pool := do.MustInvoke[*pgxpool.Pool](i)

		return store.NewAnalyticsPostgresStore(pool), nil
	})
}

// ConsumerGroupPackage registers the analytics consumer group over redis streams.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		eventStore := do.MustInvoke[analytics.Store](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "analytics",
		}, messaging.NewZapLoggerAdapter(logger))
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber, analytics.TopicLinkCreated, analytics.NewLinkCreatedHandler(eventStore), logger))
		group.Add(messaging.NewConsumer(
			subscriber, analytics.TopicLinkVisited, analytics.NewLinkVisitedHandler(eventStore), logger))

		return group, nil
	})
}

// HTTPPackage registers the router, the huma API with its middlewares,
// and all route handlers.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*handlers.LinkHandler, error) {
		options := do.MustInvoke[*Options](i)
		service := do.MustInvoke[*shortener.Service](i)
		logger := do.MustInvoke[*zap.Logger](i)
		publishCreated := do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i)
		publishVisited := do.MustInvoke[messaging.Publish[analytics.LinkVisitedEvent]](i)

		return handlers.NewLinkHandler(service, options.ServerBaseURL(), publishCreated, publishVisited, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*health.Handler, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		client := do.MustInvoke[*redis.Client](i)

		return health.NewHandler(health.NewPostgresChecker(pool), health.NewRedisChecker(client)), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		limiter := do.MustInvoke[*ratelimit.PolicyLimiter](i)
		linkHandler := do.MustInvoke[*handlers.LinkHandler](i)
		healthHandler := do.MustInvoke[*health.Handler](i)

		api := humachi.New(router, huma.DefaultConfig("URL Shortener API", "1.0.0"))

		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.PolicyRateLimiter(
			api, limiter, ratelimit.NewOperationScopeResolver(), logger))

		handlers.RegisterRoutes(api, linkHandler)
		health.RegisterRoutes(api, healthHandler)

		return api, nil
	})
}
