package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "city-weather-api/configs"
	"city-weather-api/internal/application/controller"
	"city-weather-api/internal/application/processor"
	"city-weather-api/internal/application/schedule"
	"city-weather-api/internal/domain/gateway/api"
	"city-weather-api/internal/domain/gateway/cache"
	"city-weather-api/internal/domain/gateway/db"
	"city-weather-api/internal/domain/gateway/queue"
	"city-weather-api/internal/domain/usecase/health"
	"city-weather-api/internal/domain/usecase/weather"
	"city-weather-api/internal/infra/aws"
	"city-weather-api/internal/infra/database/gorm"
	pkghttp "city-weather-api/pkg/http"
	"city-weather-api/pkg/log"
	"city-weather-api/pkg/redis"
	"city-weather-api/pkg/resource"
	"city-weather-api/pkg/sqs"

	"github.com/labstack/echo/v4"
)

func main() {
	log.Info("Starting weather worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbConn, err := gorm.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	redisClient := redis.NewClient(newRedisConfig())

	awsConfig, err := aws.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}
	sqsClient := aws.NewSqsClient(awsConfig)

	// Init Gateways
	cityGateway := db.NewGormCityGateway(dbConn)

	weatherCache := redis.NewCache(redisClient, redis.NewCacheOptions().
		WithCacheName("weather").
		WithTTL(resource.GetDuration("app.weather.cache-ttl")))
	weatherGateway := api.NewWeatherGateway(
		resource.GetString("app.weather.base-url"),
		pkghttp.ClientOptions{
			DefaultBackoff: pkghttp.NewBackoffConfig(
				resource.GetInt("app.weather.max-retries"),
				resource.GetDuration("app.weather.backoff-initial-interval"),
			),
		},
		weatherCache,
	)

	queueName := resource.GetString("app.weather.queue-name")
	jobStore := queue.NewRedisJobStore(redisClient, resource.GetDuration("app.jobs.retention"))
	queueSender := aws.NewSQSSenderAdapter(sqsClient)
	dispatcher := queue.NewDispatcher(queueName, queueSender, jobStore)

	// Init UseCase and processor
	weatherUseCase := weather.NewWeatherUseCase(
		queueName,
		resource.GetInt("app.schedule.batch-size"),
		weatherGateway,
		cityGateway,
		dispatcher,
		jobStore,
		queueSender,
	)
	jobProcessor := processor.NewWeatherJobProcessor(weatherUseCase)

	// Init Worker
	worker, err := sqs.NewWorker(ctx, sqsClient, queueName, jobProcessor, &sqs.WorkerConfig{
		MaxNumberOfMessages: int32(resource.GetInt("app.worker.max-messages")),
		WaitTimeSeconds:     int32(resource.GetInt("app.worker.wait-time-seconds")),
		PoolSize:            resource.GetInt("app.worker.pool-size"),
	})
	if err != nil {
		log.Fatalf("Failed to create SQS worker: %v", err)
	}
	go worker.Start(ctx)

	// Init Janitor
	janitor, err := schedule.NewJobJanitor(
		jobStore,
		resource.GetDuration("app.jobs.janitor-interval"),
		resource.GetDuration("app.jobs.stall-deadline"),
	)
	if err != nil {
		log.Fatalf("Failed to create job janitor: %v", err)
	}
	if err := janitor.Start(); err != nil {
		log.Fatalf("Failed to start job janitor: %v", err)
	}

	// Health endpoint reporting the worker's own polling loop
	queueHealthGateway := queue.NewQueueHealthGateway(nil)
	queueHealthGateway.RegisterWorker("weather-worker", worker)
	healthUseCase := health.NewHealthUseCase(
		db.NewGormHealthDBGateway(dbConn),
		cache.NewRedisCacheHealthGateway(redisClient),
		queueHealthGateway,
	)

	e := echo.New()
	e.HideBanner = true
	controller.NewHealthController(e.Group(""), healthUseCase).InitHealthRoutes()
	go func() {
		if err := e.Start(":" + resource.GetString("app.worker.port")); err != nil {
			log.Warnf("Worker health server stopped: %v", err)
		}
	}()

	log.Infof("Weather worker consuming queue %s", queueName)

	// Block until a shutdown signal arrives
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Stopping weather worker")
	cancel()
	queueHealthGateway.UnregisterWorker("weather-worker")
	if err := janitor.Stop(); err != nil {
		log.Warnf("Failed to stop job janitor cleanly: %v", err)
	}
}

func newRedisConfig() *redis.Config {
	return redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithCacheTTL("weather", resource.GetDuration("app.weather.cache-ttl"))
}
