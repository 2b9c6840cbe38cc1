package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/service/integration"
)

// publishEvent sends an event and only logs a failure.
func publishEvent(ctx context.Context, publisher integration.EventPublisher, logger zerolog.Logger, routingKey string, event interface{}) {
	if err := publisher.Publish(ctx, routingKey, event); err != nil {
		logger.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to publish event")
	}
}
