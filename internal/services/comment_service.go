package services

import (
	"context"
	"strings"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/authz"
	"github.com/vkazakov/adboard-backend/internal/models"
	repo "github.com/vkazakov/adboard-backend/internal/repository"
)

type CommentService struct {
	comments repo.Comments
	ads      repo.Ads
}

func NewCommentService(comments repo.Comments, ads repo.Ads) *CommentService {
	return &CommentService{comments: comments, ads: ads}
}

func (s *CommentService) ListForAd(ctx context.Context, adID int64) ([]models.Comment, error) {
	if _, err := s.ads.GetByID(ctx, adID); err != nil {
		return nil, err
	}
	return s.comments.ListByAd(ctx, adID)
}

// Create allows any authenticated user to comment on any ad.
func (s *CommentService) Create(ctx context.Context, p authz.Principal, adID int64, text string) (models.Comment, error) {
	if _, err := s.ads.GetByID(ctx, adID); err != nil {
		return models.Comment{}, err
	}
	c := models.Comment{AdID: adID, UserID: p.UserID, Text: strings.TrimSpace(text)}
	if err := c.Validate(); err != nil {
		return models.Comment{}, err
	}
	return s.comments.Create(ctx, c)
}

func (s *CommentService) Update(ctx context.Context, p authz.Principal, adID, id int64, text string) (models.Comment, error) {
	c, err := s.get(ctx, adID, id)
	if err != nil {
		return models.Comment{}, err
	}
	if !authz.CanModify(p, c.UserID) {
		return models.Comment{}, apperr.ErrForbidden
	}
	c.Text = strings.TrimSpace(text)
	if err := c.Validate(); err != nil {
		return models.Comment{}, err
	}
	if err := s.comments.Update(ctx, id, c.Text); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, p authz.Principal, adID, id int64) error {
	c, err := s.get(ctx, adID, id)
	if err != nil {
		return err
	}
	if !authz.CanModify(p, c.UserID) {
		return apperr.ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}

// get looks the comment up and checks it belongs to the ad in the URL, so a
// valid comment id under the wrong ad still reads as not found.
func (s *CommentService) get(ctx context.Context, adID, id int64) (models.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return models.Comment{}, err
	}
	if c.AdID != adID {
		return models.Comment{}, apperr.ErrNotFound
	}
	return c, nil
}
