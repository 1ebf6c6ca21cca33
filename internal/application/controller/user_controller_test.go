package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserUseCase struct {
	user    *entity.User
	page    *model.Page[entity.User]
	cities  []entity.City
	err     error
	added   [][2]uint
	removed [][2]uint
}

func (f *fakeUserUseCase) Create(params model.CreateUserDTO) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserUseCase) FindAll(page int, size int) (*model.Page[entity.User], error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeUserUseCase) FindByID(id uint) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserUseCase) AddVisitedCity(userID uint, cityID uint) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, [2]uint{userID, cityID})
	return nil
}

func (f *fakeUserUseCase) RemoveVisitedCity(userID uint, cityID uint) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, [2]uint{userID, cityID})
	return nil
}

func (f *fakeUserUseCase) FindVisitedCities(userID uint) ([]entity.City, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cities, nil
}

func newUserTestServer(useCase *fakeUserUseCase) *echo.Echo {
	e := echo.New()
	NewUserController(e.Group(""), useCase).InitUserRoutes()
	return e
}

func TestUserControllerCreate(t *testing.T) {
	useCase := &fakeUserUseCase{user: &entity.User{ID: 1, Name: "Ana"}}
	e := newUserTestServer(useCase)

	rec := doRequest(t, e, http.MethodPost, "/users", `{"name":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Ana", user.Name)
}

func TestUserControllerCreateMissingName(t *testing.T) {
	useCase := &fakeUserUseCase{err: &model.ValidationError{Field: "name", Reason: "is required"}}
	e := newUserTestServer(useCase)

	rec := doRequest(t, e, http.MethodPost, "/users", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUserControllerFindByIDNotFound(t *testing.T) {
	e := newUserTestServer(&fakeUserUseCase{err: model.NewNotFoundError("user", 42)})

	rec := doRequest(t, e, http.MethodGet, "/users/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserControllerAddVisitedCity(t *testing.T) {
	useCase := &fakeUserUseCase{}
	e := newUserTestServer(useCase)

	rec := doRequest(t, e, http.MethodPut, "/users/1/visited-cities/7", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, [][2]uint{{1, 7}}, useCase.added)
}

func TestUserControllerAddVisitedCityUnknownCity(t *testing.T) {
	e := newUserTestServer(&fakeUserUseCase{err: model.NewNotFoundError("city", 99)})

	rec := doRequest(t, e, http.MethodPut, "/users/1/visited-cities/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserControllerRemoveVisitedCity(t *testing.T) {
	useCase := &fakeUserUseCase{}
	e := newUserTestServer(useCase)

	rec := doRequest(t, e, http.MethodDelete, "/users/1/visited-cities/7", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, [][2]uint{{1, 7}}, useCase.removed)
}

func TestUserControllerFindVisitedCities(t *testing.T) {
	useCase := &fakeUserUseCase{cities: []entity.City{{ID: 1, Name: "Lima"}}}
	e := newUserTestServer(useCase)

	rec := doRequest(t, e, http.MethodGet, "/users/1/visited-cities", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cities []entity.City
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cities))
	require.Len(t, cities, 1)
	assert.Equal(t, "Lima", cities[0].Name)
}

func TestUserControllerRejectsNonNumericCityID(t *testing.T) {
	e := newUserTestServer(&fakeUserUseCase{})

	rec := doRequest(t, e, http.MethodPut, "/users/1/visited-cities/x", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
