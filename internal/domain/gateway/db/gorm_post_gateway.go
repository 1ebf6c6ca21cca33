package db

import (
	"errors"

	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"

	"gorm.io/gorm"
)

type GormPostGateway struct {
	DB *gorm.DB
}

var _ PostGateway = (*GormPostGateway)(nil)

func NewGormPostGateway(db *gorm.DB) *GormPostGateway {
	return &GormPostGateway{DB: db}
}

func (gateway *GormPostGateway) FindAll(page int, size int, ownerID *uint) (*model.Page[entity.Post], error) {
	if page < 0 {
		page = 0
	}

	query := gateway.DB.Model(&entity.Post{})
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	posts := make([]entity.Post, 0)
	err := query.
		Order("id ASC").
		Offset(page * size).
		Limit(size).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return model.NewPage(posts, page, size, total), nil
}

func (gateway *GormPostGateway) FindByID(id uint) (*entity.Post, error) {
	var post entity.Post

	err := gateway.DB.First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("post", id)
		}
		return nil, err
	}

	return &post, nil
}

func (gateway *GormPostGateway) Create(post entity.Post) (*entity.Post, error) {
	if err := gateway.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (gateway *GormPostGateway) UpdateByID(id uint, updated entity.Post) (*entity.Post, error) {
	post, err := gateway.FindByID(id)
	if err != nil {
		return nil, err
	}

	post.Title = updated.Title
	post.Content = updated.Content

	if err := gateway.DB.Save(post).Error; err != nil {
		return nil, err
	}

	return post, nil
}

func (gateway *GormPostGateway) DeleteByID(id uint) error {
	result := gateway.DB.Delete(&entity.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.NewNotFoundError("post", id)
	}
	return nil
}
