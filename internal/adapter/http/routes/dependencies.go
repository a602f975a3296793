package routes

import (
	"context"
	"fmt"

	"projectease/internal/adapter/persistence/memory"
	"projectease/internal/adapter/persistence/repository"
	"projectease/internal/config"
	"projectease/internal/domain/entities"
	"projectease/internal/infrastructure/database"
	"projectease/internal/infrastructure/events"
	"projectease/internal/infrastructure/lock"
	"projectease/internal/infrastructure/metrics"
	"projectease/internal/infrastructure/notification"
	"projectease/internal/infrastructure/payments"
	"projectease/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type dependencies struct {
	requests  interfaces.IRequestRepository
	projects  interfaces.IProjectRepository
	users     interfaces.IUserRepository
	locker    interfaces.ILocker
	gateway   interfaces.IPaymentGateway
	notifier  interfaces.INotifier
	publisher interfaces.IEventPublisher
	metrics   interfaces.IPaymentMetrics
	registry  *prometheus.Registry

	closers []func() error
	log     *zap.Logger
}

// Close releases broker connections in reverse order of creation.
func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.log.Warn("failed to close dependency", zap.Error(err))
		}
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) (*dependencies, error) {
	deps := &dependencies{log: log}

	if err := deps.setupStorage(ctx, cfg, log); err != nil {
		return nil, err
	}
	if err := deps.setupLocker(ctx, cfg, log); err != nil {
		deps.Close()
		return nil, err
	}
	if err := deps.setupMessaging(cfg, log); err != nil {
		deps.Close()
		return nil, err
	}

	deps.registry = prometheus.NewRegistry()
	deps.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.metrics = metrics.NewPaymentMetrics(deps.registry)

	gatewayLog := log.Named("payment.gateway")
	if cfg.PaymentGatewayMock || cfg.MercadoPagoAccessToken != "" {
		gw, err := payments.NewMercadoPagoGateway(payments.MercadoPagoOptions{
			AccessToken:     cfg.MercadoPagoAccessToken,
			NotificationURL: cfg.PaymentNotificationURL,
			Mock:            cfg.PaymentGatewayMock,
		}, gatewayLog)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("payment gateway: %w", err)
		}
		deps.gateway = gw
	} else {
		gatewayLog.Warn("payment gateway not configured, payment intents are disabled")
	}

	return deps, nil
}

func (d *dependencies) setupStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return fmt.Errorf("connect dynamodb: %w", err)
		}
		tables := repository.Tables{
			Requests:      cfg.RequestsTable,
			PaymentOrders: cfg.PaymentOrdersTable,
			Projects:      cfg.ProjectsTable,
			Users:         cfg.UsersTable,
		}
		d.requests = repository.NewRequestDynamoRepository(ddb, tables)
		d.projects = repository.NewProjectDynamoRepository(ddb, tables)
		d.users = repository.NewUserDynamoRepository(ddb, tables)
		log.Info("using dynamodb storage", zap.String("region", cfg.AWSRegion), zap.String("requests_table", cfg.RequestsTable))
	default:
		d.requests = memory.NewRequestRepository()
		d.projects = memory.NewProjectRepository(demoCatalog()...)
		d.users = memory.NewUserRepository()
		log.Warn("using in-memory storage, data is lost on restart")
	}
	return nil
}

func (d *dependencies) setupLocker(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.RedisAddr == "" {
		d.locker = lock.NewLocalLocker()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("connect redis: %w", err)
	}
	d.closers = append(d.closers, client.Close)
	d.locker = lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait, log.Named("lock"))
	log.Info("using redis request locks", zap.String("addr", cfg.RedisAddr))
	return nil
}

func (d *dependencies) setupMessaging(cfg *config.Config, log *zap.Logger) error {
	if cfg.RabbitMQURL != "" {
		n, err := notification.NewRabbitMQNotifier(cfg.RabbitMQURL, cfg.NotificationsExchange, cfg.MailFrom, log.Named("notifier"))
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		d.closers = append(d.closers, n.Close)
		d.notifier = n
	} else {
		d.notifier = notification.NewLogNotifier(log.Named("notifier"))
	}

	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log.Named("events"))
		if err != nil {
			return fmt.Errorf("kafka publisher: %w", err)
		}
		d.closers = append(d.closers, p.Close)
		d.publisher = p
	} else {
		d.publisher = events.NewLogPublisher(log.Named("events"))
	}
	return nil
}

// demoCatalog seeds the in-memory project catalog for local runs.
func demoCatalog() []entities.Project {
	return []entities.Project{
		{ID: "proj-inventory", Name: "Inventory Management System", Description: "Stock, suppliers and purchase orders", Category: "web", Price: 1500000},
		{ID: "proj-chatbot", Name: "Support Chat Bot", Description: "FAQ bot with human handoff", Category: "ai", Price: 900000},
		{ID: "proj-portfolio", Name: "Portfolio Website", Description: "Static portfolio with CMS", Category: "web", Price: 300000},
	}
}
