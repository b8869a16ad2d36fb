package database

import (
	"context"

	"forum/internal/core/comment"
	"forum/internal/core/errs"
	"forum/internal/core/post"
	"forum/internal/core/topic"

	"gorm.io/gorm"
)

// TopicRepositoryDatabase implements TopicRepository with gorm
type TopicRepositoryDatabase struct{ db *gorm.DB }

// NewTopicRepositoryDatabase constructor
func NewTopicRepositoryDatabase(db *gorm.DB) *TopicRepositoryDatabase {
	return &TopicRepositoryDatabase{db: db}
}

func (repo *TopicRepositoryDatabase) Create(ctx context.Context, t *topic.Topic) (*topic.Topic, error) {
	if err := repo.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (repo *TopicRepositoryDatabase) FindByID(ctx context.Context, id uint) (*topic.Topic, error) {
	var t topic.Topic
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (repo *TopicRepositoryDatabase) List(ctx context.Context, offset, limit int) ([]*topic.Topic, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&topic.Topic{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var topics []*topic.Topic
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&topics).Error; err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

// Update writes the only mutable column, the description.
func (repo *TopicRepositoryDatabase) Update(ctx context.Context, t *topic.Topic) error {
	return updateColumn(repo.db.WithContext(ctx), &topic.Topic{}, "description", t.Description, "id = ?", t.ID)
}

// DeleteCascade removes comments, then posts, then the topic in one transaction.
func (repo *TopicRepositoryDatabase) DeleteCascade(ctx context.Context, id uint) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&post.Post{}).Where("topic_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&comment.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("topic_id = ?", id).Delete(&post.Post{}).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&topic.Topic{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}
