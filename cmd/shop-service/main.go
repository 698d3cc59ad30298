package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/SergeyBogomolovv/shop-service/docs"
	"github.com/SergeyBogomolovv/shop-service/internal/app"
	"github.com/SergeyBogomolovv/shop-service/internal/config"
	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/internal/events"
	"github.com/SergeyBogomolovv/shop-service/internal/handler"
	"github.com/SergeyBogomolovv/shop-service/internal/mongodb"
	"github.com/SergeyBogomolovv/shop-service/internal/postgres"
	"github.com/SergeyBogomolovv/shop-service/internal/repo"
	"github.com/SergeyBogomolovv/shop-service/internal/service"
	"github.com/SergeyBogomolovv/shop-service/pkg/cache"
	"github.com/SergeyBogomolovv/shop-service/pkg/keymutex"
	"github.com/SergeyBogomolovv/shop-service/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title           Shop Service API
// @version         1.0
// @description     Cart and order HTTP API
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	st, err := openStorage(ctx, logger, conf)
	panicIfErr("failed to open storage", err)
	defer st.close()

	var cartCache service.CartCache = cache.NopCache{}
	if conf.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer rdb.Close()
		panicIfErr("failed to ping redis", rdb.Ping(ctx).Err())
		logger.Info("redis connected")
		cartCache = cache.NewRedisCache(rdb, "cart", conf.Redis.CartTTL, conf.Redis.CartTTLJitter)
	}

	productCache := cache.NewLRUCache[string, entities.Product](conf.Cache.Capacity, conf.Cache.TTL)
	locker := keymutex.New()
	publisher := events.NewKafkaPublisher(conf.Kafka)

	catalogService := service.NewCatalogService(logger, st.repo, productCache)
	cartService := service.NewCartService(logger, st.repo, catalogService, cartCache, locker)
	orderService := service.NewOrderService(
		logger,
		st.txManager,
		st.repo,
		cartService,
		catalogService,
		publisher,
		locker,
		conf.Orders.VerifyPrices,
	)

	service.RegisterMetrics()
	handler.RegisterMetrics()

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, catalogService)
	httpHandler := handler.NewHTTPHandler(logger, cartService, orderService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(append(st.starters, productCache)...)
	app.SetClosers(publisher)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type store interface {
	service.ProductRepo
	service.CartRepo
	service.OrderRepo
}

type storage struct {
	repo      store
	txManager trm.Manager
	starters  []app.Starter
	close     func()
}

func openStorage(ctx context.Context, logger *slog.Logger, conf config.Config) (storage, error) {
	switch conf.Storage.Driver {
	case config.StorageMongo:
		client, err := mongodb.New(ctx, conf.Mongo)
		if err != nil {
			return storage{}, err
		}
		logger.Info("mongo connected")

		mongoRepo := repo.NewMongoRepo(client.Database(conf.Mongo.Database))
		return storage{
			repo:      mongoRepo,
			txManager: trm.NewMongoManager(client),
			starters:  []app.Starter{indexStarter{mongoRepo}},
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				client.Disconnect(ctx)
			},
		}, nil

	default:
		db, err := postgres.New(ctx, conf.Postgres)
		if err != nil {
			return storage{}, err
		}
		logger.Info("postgres connected")

		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return storage{}, err
		}
		logger.Info("migrations applied")

		return storage{
			repo:      repo.NewPostgresRepo(db),
			txManager: trm.NewManager(db),
			close:     func() { db.Close() },
		}, nil
	}
}

type indexCreator interface {
	CreateIndexes(ctx context.Context) error
}

type indexStarter struct {
	repo indexCreator
}

func (s indexStarter) Start(ctx context.Context) error {
	return s.repo.CreateIndexes(ctx)
}
