package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"orderintake/configs"
	"orderintake/internal/adapter/cache"
	adapterhttp "orderintake/internal/adapter/http"
	"orderintake/internal/adapter/http/middleware"
	"orderintake/internal/adapter/kafka"
	"orderintake/internal/adapter/queue"
	"orderintake/internal/adapter/repo"
	"orderintake/internal/logging"
	"orderintake/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

// InitWithConfig wires the whole process: every client is constructed
// here exactly once and handed to the components that need it.
func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.New(cfg.App.Name, cfg.App.LogFile)

	// mysql
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// repos + caches
	orderRepo := repo.NewMySQLOrderRepo(db)
	customerRepo := repo.NewMySQLCustomerRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Cache.TTL)

	// queue topology + producer
	top := queue.Topology{
		Exchange:      cfg.Rabbit.Exchange,
		RoutingKey:    cfg.Rabbit.RoutingKey,
		Queue:         cfg.Rabbit.Queue,
		DLX:           cfg.Rabbit.DLX,
		DLQ:           cfg.Rabbit.DLQ,
		MaxDeliveries: cfg.Rabbit.MaxDeliveries,
	}
	producer, err := queue.NewRabbitProducer(ch, top)
	if err != nil {
		return nil, nil, err
	}

	// consumer side: the processor and its harness
	processUC := usecase.NewProcessOrder(orderRepo, logging.Child(log, "processor"))
	if err := startConsumer(cfg, ch, top, processUC, log); err != nil {
		return nil, nil, err
	}

	// fulfillment feedback listener
	kafkaCancel, err := startStatusListener(cfg, orderRepo, statusCache, log)
	if err != nil {
		return nil, nil, err
	}

	// http surface
	submitUC := usecase.NewSubmitOrder(producer, idem)
	handlers := adapterhttp.Handlers{
		Orders:    adapterhttp.NewOrderHandler(submitUC, orderRepo),
		Customers: adapterhttp.NewCustomerHandler(customerRepo),
		Products:  adapterhttp.NewProductHandler(productRepo),
		Tokens:    adapterhttp.NewTokenHandler(cfg),
	}
	authz := middleware.NewAuthz(cfg)
	router := adapterhttp.NewRouter(handlers, authz, log)

	cleanup := func() {
		kafkaCancel()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	log.Info("order-intake wired", "queue", top.Queue, "dlq", top.DLQ)
	return &App{Router: router}, cleanup, nil
}

func startConsumer(cfg configs.Config, ch *amqp091.Channel, top queue.Topology, proc *usecase.ProcessOrder, log *slog.Logger) error {
	router := queue.NewRouter(ch,
		queue.WithPrefetch(cfg.Rabbit.Prefetch),
		queue.WithTimeout(cfg.Rabbit.HandleTimeout),
		queue.WithMaxDeliveries(top.MaxDeliveries),
		queue.WithLogger(logging.Child(log, "queue")),
	)
	router.Register(top.Queue, queue.NewProcessOrderHandler(proc))
	return router.Start()
}

func startStatusListener(cfg configs.Config, store usecase.OrderStore, statusCache usecase.StatusCache, log *slog.Logger) (context.CancelFunc, error) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, err
	}

	h := kafka.NewOrderStatusChangedHandler(store, statusCache)
	l := logging.Child(log, "kafka")
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.StatusTopic}, l, h.Handle)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			l.Error("status listener stopped", "err", err)
		}
	}()
	return cancel, nil
}
