package post

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/gateway/db"
	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/log"

	"go.uber.org/zap"
)

type postUseCase struct {
	postGateway db.PostGateway
	userGateway db.UserGateway
}

func NewPostUseCase(postGateway db.PostGateway, userGateway db.UserGateway) UseCase {
	return &postUseCase{
		postGateway: postGateway,
		userGateway: userGateway,
	}
}

func (uc *postUseCase) Create(params model.CreatePostDTO) (*entity.Post, error) {
	if params.Title == "" {
		return nil, &model.ValidationError{Field: "title", Reason: "is required"}
	}
	if params.OwnerID == nil {
		return nil, &model.ValidationError{Field: "ownerId", Reason: "is required"}
	}

	// The owner lookup surfaces a not-found before the insert instead of a
	// driver-specific foreign key error.
	if _, err := uc.userGateway.FindByID(*params.OwnerID); err != nil {
		return nil, err
	}

	created, err := uc.postGateway.Create(entity.Post{
		Title:   params.Title,
		Content: params.Content,
		OwnerID: *params.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Post created", zap.Uint("post_id", created.ID), zap.Uint("owner_id", created.OwnerID))
	return created, nil
}

func (uc *postUseCase) FindAll(page int, size int, ownerID *uint) (*model.Page[entity.Post], error) {
	return uc.postGateway.FindAll(page, size, ownerID)
}

func (uc *postUseCase) FindByID(id uint) (*entity.Post, error) {
	return uc.postGateway.FindByID(id)
}

func (uc *postUseCase) UpdateByID(id uint, params model.UpdatePostDTO) (*entity.Post, error) {
	if params.Title == "" {
		return nil, &model.ValidationError{Field: "title", Reason: "is required"}
	}

	return uc.postGateway.UpdateByID(id, entity.Post{
		Title:   params.Title,
		Content: params.Content,
	})
}

func (uc *postUseCase) DeleteByID(id uint) error {
	return uc.postGateway.DeleteByID(id)
}
