package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCityUseCase struct {
	page      *model.Page[entity.City]
	city      *entity.City
	err       error
	deleted   []uint
	lastParam model.CityParamsDTO
}

func (f *fakeCityUseCase) FindAll(page int, size int, filter model.CityFilter) (*model.Page[entity.City], error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeCityUseCase) FindByID(id uint) (*entity.City, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.city, nil
}

func (f *fakeCityUseCase) Create(params model.CityParamsDTO) (*entity.City, error) {
	f.lastParam = params
	if f.err != nil {
		return nil, f.err
	}
	return f.city, nil
}

func (f *fakeCityUseCase) UpdateByID(id uint, params model.CityParamsDTO) (*entity.City, error) {
	f.lastParam = params
	if f.err != nil {
		return nil, f.err
	}
	return f.city, nil
}

func (f *fakeCityUseCase) DeleteByID(id uint) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newCityTestServer(useCase *fakeCityUseCase) *echo.Echo {
	e := echo.New()
	NewCityController(e.Group(""), useCase).InitCityRoutes()
	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCityControllerFindByID(t *testing.T) {
	useCase := &fakeCityUseCase{city: &entity.City{ID: 1, Name: "Lima", Country: "PE"}}
	e := newCityTestServer(useCase)

	rec := doRequest(t, e, http.MethodGet, "/cities/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var city entity.City
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &city))
	assert.Equal(t, "Lima", city.Name)
}

func TestCityControllerFindByIDNotFound(t *testing.T) {
	useCase := &fakeCityUseCase{err: model.NewNotFoundError("city", 42)}
	e := newCityTestServer(useCase)

	rec := doRequest(t, e, http.MethodGet, "/cities/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestCityControllerRejectsNonNumericID(t *testing.T) {
	e := newCityTestServer(&fakeCityUseCase{})

	rec := doRequest(t, e, http.MethodGet, "/cities/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCityControllerCreate(t *testing.T) {
	useCase := &fakeCityUseCase{city: &entity.City{ID: 1, Name: "Lima"}}
	e := newCityTestServer(useCase)

	rec := doRequest(t, e, http.MethodPost, "/cities", `{"name":"Lima","country":"PE","latitude":-12.0464,"longitude":-77.0428}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Lima", useCase.lastParam.Name)
	require.NotNil(t, useCase.lastParam.Latitude)
	assert.InDelta(t, -12.0464, *useCase.lastParam.Latitude, 1e-9)
}

func TestCityControllerCreateValidationFailure(t *testing.T) {
	useCase := &fakeCityUseCase{err: &model.ValidationError{Field: "name", Reason: "is required"}}
	e := newCityTestServer(useCase)

	rec := doRequest(t, e, http.MethodPost, "/cities", `{"country":"PE"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCityControllerCreateMalformedBody(t *testing.T) {
	e := newCityTestServer(&fakeCityUseCase{})

	rec := doRequest(t, e, http.MethodPost, "/cities", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCityControllerUpdate(t *testing.T) {
	useCase := &fakeCityUseCase{city: &entity.City{ID: 1, Name: "Lima Centro"}}
	e := newCityTestServer(useCase)

	rec := doRequest(t, e, http.MethodPut, "/cities/1", `{"name":"Lima Centro","latitude":-12.05,"longitude":-77.03}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Lima Centro", useCase.lastParam.Name)
}

func TestCityControllerDelete(t *testing.T) {
	useCase := &fakeCityUseCase{}
	e := newCityTestServer(useCase)

	rec := doRequest(t, e, http.MethodDelete, "/cities/7", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint{7}, useCase.deleted)
}

func TestCityControllerFindAllPassesFilters(t *testing.T) {
	useCase := &fakeCityUseCase{page: model.NewPage([]entity.City{{ID: 1, Name: "Lima"}}, 0, 10, 1)}
	e := newCityTestServer(useCase)

	rec := doRequest(t, e, http.MethodGet, "/cities?name=lim&country=pe&sortBy=name&order=desc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page model.Page[entity.City]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Lima", page.Content[0].Name)
}
