package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"example.com/fastshop/internal/config"
	domcategory "example.com/fastshop/internal/domain/category"
	domproduct "example.com/fastshop/internal/domain/product"
	"example.com/fastshop/internal/infra/cache"
	rediscache "example.com/fastshop/internal/infra/cache/redis"
	"example.com/fastshop/internal/infra/logging"
	"example.com/fastshop/internal/infra/persistence/memory"
	"example.com/fastshop/internal/infra/persistence/mysql"
	"example.com/fastshop/internal/infra/persistence/postgres"
	apihttp "example.com/fastshop/internal/interface/http"
	cartuc "example.com/fastshop/internal/usecase/cart"
	categoryuc "example.com/fastshop/internal/usecase/category"
	productuc "example.com/fastshop/internal/usecase/product"
)

type catalog struct {
	products   domproduct.Repository
	categories domcategory.Repository
	close      func()
}

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := openCatalog(ctx, cfg, log)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.DBDriver).Fatal("catalog unavailable")
	}
	defer store.close()

	var productReader cartuc.ProductRepository = store.products
	if cfg.RedisURL != "" {
		client := rediscache.NewClient(cfg.RedisURL)
		defer client.Close()
		productCache := rediscache.NewProductCache(client, cfg.CacheTTL)
		if err := productCache.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unreachable, product lookups fall through to the store")
		}
		productReader = cache.NewCachedProductReader(store.products, productCache, log)
		log.WithField("ttl", cfg.CacheTTL.String()).Info("product cache enabled")
	}

	api := apihttp.NewAPI(apihttp.Dependencies{
		AppName:         cfg.AppName,
		ProductService:  productuc.NewService(store.products, store.categories),
		CategoryService: categoryuc.NewService(store.categories),
		CartService:     cartuc.NewService(productReader, log),
		Logger:          log,
		CORSOrigins:     cfg.CORSOrigins,
		StaticDir:       cfg.StaticDir,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithFields(logrus.Fields{
			"addr":   server.Addr,
			"driver": cfg.DBDriver,
		}).Info("http server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown error")
	}

	wg.Wait()
	log.Info("bye")
}

func openCatalog(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*catalog, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := mysql.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
			log.Info("mysql schema applied")
		}
		return &catalog{
			products:   mysql.NewProductRepository(db),
			categories: mysql.NewCategoryRepository(db),
			close:      func() { db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.PGDSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info("postgres schema applied")
		}
		return &catalog{
			products:   postgres.NewProductRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			close:      pool.Close,
		}, nil

	default:
		store := memory.NewCatalog()
		if cfg.SeedFile != "" {
			if err := store.LoadFile(cfg.SeedFile); err != nil {
				return nil, err
			}
			log.WithField("file", cfg.SeedFile).Info("catalog seeded")
		}
		return &catalog{
			products:   store,
			categories: store.Categories(),
			close:      func() {},
		}, nil
	}
}
