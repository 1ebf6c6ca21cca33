package schedule

import (
	"context"
	"time"

	"city-weather-api/internal/domain/usecase/weather"
	"city-weather-api/pkg/log"
	"city-weather-api/pkg/redis"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// WeatherSchedulerConfig holds configuration for the weather refresh scheduler
type WeatherSchedulerConfig struct {
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// WeatherScheduler re-warms the weather cache for all stored cities on a cron
// schedule. A distributed lock keeps the schedule active on a single instance.
type WeatherScheduler struct {
	cron        *cron.Cron
	useCase     weather.UseCase
	redisClient *redis.Client
	config      *WeatherSchedulerConfig
}

// NewWeatherScheduler creates a new weather scheduler with distributed locking support
func NewWeatherScheduler(useCase weather.UseCase, redisClient *redis.Client, cronExpression string, lockTTL int, refreshInterval int) *WeatherScheduler {
	return &WeatherScheduler{
		cron:        cron.New(cron.WithSeconds()),
		useCase:     useCase,
		redisClient: redisClient,
		config: &WeatherSchedulerConfig{
			CronExpression:  cronExpression,
			LockTTL:         time.Duration(lockTTL) * time.Second,
			RefreshInterval: time.Duration(refreshInterval) * time.Second,
		},
	}
}

// InitWeatherScheduleTasks initializes the refresh schedule behind a
// distributed lock
func (s *WeatherScheduler) InitWeatherScheduleTasks(ctx context.Context) {
	go func() {
		lock := redis.NewLock(
			s.redisClient,
			"weather_refresh_scheduler",
			redis.NewLockOptions().
				WithTTL(s.getLockTTL()).
				WithRefreshInterval(s.getRefreshInterval()).
				WithLockNamespace("weather_schedules"),
		)

		if err := lock.Lock(ctx); err != nil {
			log.Errorf("Failed to acquire distributed lock, weather scheduler will not be initialized: %v", err)
			return
		}

		// Keep the lock for as long as this instance runs the schedule
		refreshErrChan := lock.AutoRefresh(ctx)

		cronExpression := s.config.CronExpression
		_, err := s.cron.AddFunc(cronExpression, s.ExecuteScheduledTask)
		if err != nil {
			log.Errorf("Failed to initialize weather scheduler, cron will not be started: %v", err)
			return
		}

		s.cron.Start()
		log.Infof("Weather refresh scheduler started successfully with cron expression: %s", cronExpression)

		err = <-refreshErrChan

		if s.cron != nil {
			cronCtx := s.cron.Stop()
			<-cronCtx.Done()
		}

		if err != nil {
			log.Errorf("Weather refresh scheduler stopped due to auto-refresh failure: %v", err)
		} else {
			log.Info("Weather refresh scheduler stopped gracefully")
		}
	}()
}

// ExecuteScheduledTask enqueues a weather refresh for every stored city
func (s *WeatherScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()

	log.Info("Weather refresh scheduled task triggered", zap.String("request_id", requestID))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := s.useCase.RefreshAllCitiesWeather(ctx, requestID); err != nil {
		log.Error("Failed to execute scheduled weather refresh", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info("Scheduled weather refresh completed successfully", zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler
func (s *WeatherScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *WeatherScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *WeatherScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 1 * time.Minute
}
