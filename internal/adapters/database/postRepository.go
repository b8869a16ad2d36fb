package database

import (
	"context"

	"forum/internal/core/comment"
	"forum/internal/core/errs"
	"forum/internal/core/post"

	"gorm.io/gorm"
)

// PostRepositoryDatabase implements PostRepository with gorm
type PostRepositoryDatabase struct{ db *gorm.DB }

// NewPostRepositoryDatabase constructor
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, topicID, postID uint) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).
		Where("id = ? AND topic_id = ?", postID, topicID).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ListByTopic(ctx context.Context, topicID uint, offset, limit int) ([]*post.Post, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Where("topic_id = ?", topicID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*post.Post
	if err := repo.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	return updateColumn(repo.db.WithContext(ctx), &post.Post{}, "body", p.Body, "id = ? AND topic_id = ?", p.ID, p.TopicID)
}

// DeleteCascade removes the comments and then the post in one transaction.
func (repo *PostRepositoryDatabase) DeleteCascade(ctx context.Context, topicID, postID uint) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND topic_id = ?", postID, topicID).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}
