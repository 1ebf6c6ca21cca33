package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"city-weather-api/internal/domain/gateway/api"
	"city-weather-api/internal/domain/gateway/db"
	"city-weather-api/internal/domain/gateway/queue"
	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type weatherUseCase struct {
	queueName   string
	batchSize   int
	apiGateway  api.WeatherGateway
	cityGateway db.CityGateway
	dispatcher  queue.Dispatcher
	jobStore    queue.JobStore
	queueSender queue.Sender
}

func NewWeatherUseCase(queueName string, batchSize int, apiGateway api.WeatherGateway, cityGateway db.CityGateway, dispatcher queue.Dispatcher, jobStore queue.JobStore, queueSender queue.Sender) UseCase {
	return &weatherUseCase{
		queueName:   queueName,
		batchSize:   batchSize,
		apiGateway:  apiGateway,
		cityGateway: cityGateway,
		dispatcher:  dispatcher,
		jobStore:    jobStore,
		queueSender: queueSender,
	}
}

// GetCityWeather fetches the current weather for a stored city
func (uc *weatherUseCase) GetCityWeather(ctx context.Context, cityID uint) (*model.WeatherSnapshot, error) {
	city, err := uc.cityGateway.FindByID(cityID)
	if err != nil {
		return nil, err
	}

	return uc.apiGateway.CurrentWeather(ctx, city.Latitude, city.Longitude)
}

// SubmitCityWeatherJob enqueues an asynchronous weather fetch for a stored city
func (uc *weatherUseCase) SubmitCityWeatherJob(ctx context.Context, cityID uint) (*model.SubmittedJobDTO, error) {
	city, err := uc.cityGateway.FindByID(cityID)
	if err != nil {
		return nil, err
	}

	submitted, err := uc.dispatcher.Submit(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to submit weather job for city %d: %w", cityID, err)
	}

	log.Info("Weather job submitted",
		zap.String("job_id", submitted.JobID),
		zap.Uint("city_id", cityID))
	return submitted, nil
}

// GetWeatherJob returns the current state of a submitted job
func (uc *weatherUseCase) GetWeatherJob(ctx context.Context, jobID string) (*model.WeatherJob, error) {
	return uc.dispatcher.Poll(ctx, jobID)
}

// ProcessWeatherJob runs one queued job to a terminal state. Failures end up
// in the job record instead of propagating, so a job never leaves the worker
// as a processing error.
func (uc *weatherUseCase) ProcessWeatherJob(ctx context.Context, message model.WeatherJobMessage) error {
	err := uc.jobStore.MarkRunning(ctx, message.JobID)
	if err != nil {
		if errors.Is(err, queue.ErrJobTransition) || model.IsNotFound(err) {
			// Already picked up, already finished, or expired.
			log.Warn("Skipping weather job",
				zap.String("job_id", message.JobID),
				zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to mark job %s running: %w", message.JobID, err)
	}

	snapshot, err := uc.apiGateway.CurrentWeather(ctx, message.Latitude, message.Longitude)
	if err != nil {
		log.Warn("Weather job fetch failed",
			zap.String("job_id", message.JobID),
			zap.Error(err))
		if failErr := uc.jobStore.Fail(ctx, message.JobID, err.Error()); failErr != nil && !errors.Is(failErr, queue.ErrJobTransition) {
			return fmt.Errorf("failed to fail job %s: %w", message.JobID, failErr)
		}
		return nil
	}

	if err := uc.jobStore.Complete(ctx, message.JobID, snapshot); err != nil && !errors.Is(err, queue.ErrJobTransition) {
		return fmt.Errorf("failed to complete job %s: %w", message.JobID, err)
	}

	log.Info("Weather job completed", zap.String("job_id", message.JobID))
	return nil
}

// RefreshAllCitiesWeather enqueues a weather refresh for every stored city in
// batches using key-set pagination
func (uc *weatherUseCase) RefreshAllCitiesWeather(ctx context.Context, requestID string) error {
	log.Info("Starting scheduled weather refresh", zap.String("request_id", requestID))

	var lastID uint
	totalProcessed := 0
	totalEnqueued := 0
	totalFailed := 0

	for {
		cities, err := uc.cityGateway.FindAllWithKeysetPagination(lastID, uc.batchSize)
		if err != nil {
			log.Error("Failed to fetch cities with key-set pagination",
				zap.String("request_id", requestID),
				zap.Uint("last_id", lastID),
				zap.Error(err))
			return fmt.Errorf("failed to fetch cities with key-set pagination (lastID: %d): %w", lastID, err)
		}

		if len(cities) == 0 {
			break
		}

		totalProcessed += len(cities)

		messages := make([]queue.BatchMessage, 0, len(cities))
		for _, city := range cities {
			jobID, err := uc.createRefreshJob(ctx, city.Latitude, city.Longitude)
			if err != nil {
				log.Warn("Failed to record refresh job",
					zap.String("request_id", requestID),
					zap.Uint("city_id", city.ID),
					zap.Error(err))
				totalFailed++
				continue
			}

			messages = append(messages, queue.BatchMessage{
				MessageID: fmt.Sprintf("refresh-%s-city-%d", requestID, city.ID),
				Body: model.WeatherJobMessage{
					JobID:     jobID,
					Latitude:  city.Latitude,
					Longitude: city.Longitude,
				},
			})
		}

		if len(messages) > 0 {
			result, err := uc.queueSender.SendMessageBatch(ctx, uc.queueName, messages)
			if err != nil {
				log.Warn("Failed to send refresh batch",
					zap.String("request_id", requestID),
					zap.Uint("starting_city_id", lastID),
					zap.Error(err))
				totalFailed += len(messages)
			} else {
				totalEnqueued += len(result.Successful)
				totalFailed += len(result.Failed)
			}
		}

		lastID = cities[len(cities)-1].ID
	}

	log.Info("Completed scheduled weather refresh",
		zap.String("request_id", requestID),
		zap.Int("total_processed", totalProcessed),
		zap.Int("total_enqueued", totalEnqueued),
		zap.Int("total_failed", totalFailed))
	return nil
}

// createRefreshJob records a pending job so the worker's status transitions
// have a record to land on.
func (uc *weatherUseCase) createRefreshJob(ctx context.Context, latitude float64, longitude float64) (string, error) {
	submitted := model.WeatherJob{
		ID:        uuid.New().String(),
		Status:    model.JobStatusPending,
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.jobStore.Create(ctx, submitted); err != nil {
		return "", err
	}
	return submitted.ID, nil
}
