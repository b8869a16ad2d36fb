package database

import (
	"context"

	"forum/internal/core/comment"
	"forum/internal/core/errs"

	"gorm.io/gorm"
)

// CommentRepositoryDatabase implements CommentRepository with gorm
type CommentRepositoryDatabase struct{ db *gorm.DB }

// NewCommentRepositoryDatabase constructor
func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := repo.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, postID, commentID uint) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) ListByPost(ctx context.Context, postID uint, offset, limit int) ([]*comment.Comment, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&comment.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*comment.Comment
	if err := repo.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (repo *CommentRepositoryDatabase) Update(ctx context.Context, c *comment.Comment) error {
	return updateColumn(repo.db.WithContext(ctx), &comment.Comment{}, "content", c.Content, "id = ? AND post_id = ?", c.ID, c.PostID)
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, postID, commentID uint) error {
	res := repo.db.WithContext(ctx).Where("id = ? AND post_id = ?", commentID, postID).Delete(&comment.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
