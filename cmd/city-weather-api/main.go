package main

import (
	"context"

	_ "city-weather-api/configs"
	"city-weather-api/internal/application/controller"
	"city-weather-api/internal/application/middleware"
	"city-weather-api/internal/application/schedule"
	"city-weather-api/internal/domain/gateway/api"
	"city-weather-api/internal/domain/gateway/cache"
	"city-weather-api/internal/domain/gateway/db"
	"city-weather-api/internal/domain/gateway/queue"
	"city-weather-api/internal/domain/usecase/city"
	"city-weather-api/internal/domain/usecase/health"
	"city-weather-api/internal/domain/usecase/post"
	"city-weather-api/internal/domain/usecase/user"
	"city-weather-api/internal/domain/usecase/weather"
	"city-weather-api/internal/infra/aws"
	"city-weather-api/internal/infra/database/gorm"
	pkghttp "city-weather-api/pkg/http"
	"city-weather-api/pkg/log"
	"city-weather-api/pkg/msg"
	"city-weather-api/pkg/redis"
	"city-weather-api/pkg/resource"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	log.Info(msg.GetMessage("app.start"))

	ctx := context.Background()

	// Init infra
	e := echo.New()
	middleware.SetupRequestLogger(e)
	apiGroup := e.Group(resource.GetString("app.server.context-path"))

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
	userGateway := db.NewGormUserGateway(dbConn)
	postGateway := db.NewGormPostGateway(dbConn)

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

	dbHealthGateway := db.NewGormHealthDBGateway(dbConn)
	cacheHealthGateway := cache.NewRedisCacheHealthGateway(redisClient)
	queueHealthGateway := queue.NewQueueHealthGateway(func(ctx context.Context) error {
		_, err := sqsClient.GetQueueUrl(ctx, &awssqs.GetQueueUrlInput{QueueName: &queueName})
		return err
	})

	// Init UseCases
	cityUseCase := city.NewCityUseCase(cityGateway)
	userUseCase := user.NewUserUseCase(userGateway)
	postUseCase := post.NewPostUseCase(postGateway, userGateway)
	weatherUseCase := weather.NewWeatherUseCase(
		queueName,
		resource.GetInt("app.schedule.batch-size"),
		weatherGateway,
		cityGateway,
		dispatcher,
		jobStore,
		queueSender,
	)
	healthUseCase := health.NewHealthUseCase(dbHealthGateway, cacheHealthGateway, queueHealthGateway)

	// Init Controllers
	rateLimiter := redis.NewRateLimiter(redisClient, &redis.RateLimiterOptions{
		Limit:     int64(resource.GetInt("app.weather.rate-limit")),
		Window:    resource.GetDuration("app.weather.rate-limit-window"),
		Namespace: "weather-rate-limit",
	})

	cityController := controller.NewCityController(apiGroup, cityUseCase)
	userController := controller.NewUserController(apiGroup, userUseCase)
	postController := controller.NewPostController(apiGroup, postUseCase)
	weatherController := controller.NewWeatherController(apiGroup, weatherUseCase, middleware.WeatherRateLimiter(rateLimiter))
	healthController := controller.NewHealthController(apiGroup, healthUseCase)

	// Init Routes
	cityController.InitCityRoutes()
	userController.InitUserRoutes()
	postController.InitPostRoutes()
	weatherController.InitWeatherRoutes()
	healthController.InitHealthRoutes()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Init Schedule
	weatherScheduler := schedule.NewWeatherScheduler(
		weatherUseCase,
		redisClient,
		resource.GetString("app.schedule.refresh-cron"),
		resource.GetInt("app.schedule.lock-ttl-seconds"),
		resource.GetInt("app.schedule.lock-refresh-seconds"),
	)
	weatherScheduler.InitWeatherScheduleTasks(ctx)

	// Start Routes
	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
}

func newRedisConfig() *redis.Config {
	return redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithCacheTTL("weather", resource.GetDuration("app.weather.cache-ttl"))
}
