package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"city-weather-api/internal/domain/model"
	"city-weather-api/internal/domain/usecase/weather"
	"city-weather-api/pkg/log"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type WeatherJobProcessor struct {
	weatherUseCase weather.UseCase
}

func NewWeatherJobProcessor(weatherUseCase weather.UseCase) *WeatherJobProcessor {
	return &WeatherJobProcessor{
		weatherUseCase: weatherUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *WeatherJobProcessor) HandleMessage(ctx context.Context, msg *types.Message) error {
	if msg == nil || msg.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	var message model.WeatherJobMessage
	if err := json.Unmarshal([]byte(*msg.Body), &message); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}
	if message.JobID == "" {
		return fmt.Errorf("message has no job id")
	}

	log.Infof("Processing weather job: %s", message.JobID)

	if err := p.weatherUseCase.ProcessWeatherJob(ctx, message); err != nil {
		return fmt.Errorf("failed to process weather job %s: %w", message.JobID, err)
	}

	return nil
}
