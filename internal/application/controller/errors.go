package controller

import (
	"errors"
	"net/http"

	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/msg"
	"city-weather-api/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

// notFoundMessageKeys maps a NotFoundError resource to its message catalog
// key.
var notFoundMessageKeys = map[string]string{
	"city": "city.not-found",
	"user": "user.not-found",
	"post": "post.not-found",
	"job":  "weather.job-not-found",
}

// writeError translates a domain error to its HTTP response. Controllers are
// the only place this translation happens; user-facing texts come from the
// message catalog.
func writeError(c echo.Context, err error) error {
	switch {
	case model.IsNotFound(err):
		return c.JSON(http.StatusNotFound, map[string]string{"error": notFoundMessage(err)})
	case model.IsValidation(err):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case model.IsProviderFailure(err):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": providerFailureMessage(err)})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func notFoundMessage(err error) string {
	var notFound *model.NotFoundError
	if errors.As(err, &notFound) {
		if key, ok := notFoundMessageKeys[notFound.Resource]; ok {
			return msg.GetMessage(key)
		}
	}
	return err.Error()
}

func providerFailureMessage(err error) string {
	var malformed *model.MalformedResponseError
	if errors.As(err, &malformed) {
		return msg.GetMessage("weather.malformed-response", malformed.Missing)
	}
	var network *model.NetworkFailureError
	if errors.As(err, &network) {
		return msg.GetMessage("weather.provider-failure", network.Err.Error())
	}
	return err.Error()
}

// parseIDParam reads a numeric path parameter, rejecting anything that is not
// a valid id.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := numberutils.ToUintWithError(c.Param(name))
	if err != nil {
		return 0, &model.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return id, nil
}
