package services

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/authz"
	"github.com/vkazakov/adboard-backend/internal/metrics"
	"github.com/vkazakov/adboard-backend/internal/models"
	repo "github.com/vkazakov/adboard-backend/internal/repository"
	"github.com/vkazakov/adboard-backend/internal/storage"
)

type AdService struct {
	ads    repo.Ads
	images *storage.ImageStore
}

func NewAdService(ads repo.Ads, images *storage.ImageStore) *AdService {
	return &AdService{ads: ads, images: images}
}

type AdInput struct {
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

func (in AdInput) toAd() models.Ad {
	return models.Ad{
		Title:       strings.TrimSpace(in.Title),
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
	}
}

// List returns every ad; the handler wraps it with a count per the public
// listing contract.
func (s *AdService) List(ctx context.Context) ([]models.Ad, error) {
	return s.ads.List(ctx)
}

func (s *AdService) ListMine(ctx context.Context, p authz.Principal) ([]models.Ad, error) {
	return s.ads.ListByUser(ctx, p.UserID)
}

func (s *AdService) GetFull(ctx context.Context, id int64) (models.FullAd, error) {
	return s.ads.GetFull(ctx, id)
}

// Create validates the properties before the image touches disk, so a bad
// payload leaves no orphan file behind.
func (s *AdService) Create(ctx context.Context, p authz.Principal, in AdInput, filename string, image io.Reader) (models.Ad, error) {
	a := in.toAd()
	a.UserID = p.UserID
	if err := a.Validate(); err != nil {
		return models.Ad{}, err
	}
	created, err := s.ads.Create(ctx, a)
	if err != nil {
		return models.Ad{}, err
	}
	path, err := s.images.Save("ads", created.ID, filename, image)
	if err != nil {
		s.rollbackCreate(ctx, created.ID)
		return models.Ad{}, err
	}
	if err := s.ads.UpdateImage(ctx, created.ID, path); err != nil {
		s.rollbackCreate(ctx, created.ID)
		return models.Ad{}, err
	}
	created.ImagePath = path
	metrics.AdsCreated.Inc()
	return created, nil
}

// rollbackCreate removes the half-created ad when the image write fails, so
// listings never show an ad without its image.
func (s *AdService) rollbackCreate(ctx context.Context, id int64) {
	if err := s.ads.Delete(ctx, id); err != nil {
		slog.Error("rollback ad create", "id", id, "err", err)
	}
}

func (s *AdService) Update(ctx context.Context, p authz.Principal, id int64, in AdInput) (models.Ad, error) {
	existing, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return models.Ad{}, err
	}
	if !authz.CanModify(p, existing.UserID) {
		return models.Ad{}, apperr.ErrForbidden
	}
	a := in.toAd()
	a.ID = id
	if err := a.Validate(); err != nil {
		return models.Ad{}, err
	}
	if err := s.ads.Update(ctx, a); err != nil {
		return models.Ad{}, err
	}
	return s.ads.GetByID(ctx, id)
}

func (s *AdService) UpdateImage(ctx context.Context, p authz.Principal, id int64, filename string, image io.Reader) (string, error) {
	existing, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !authz.CanModify(p, existing.UserID) {
		return "", apperr.ErrForbidden
	}
	path, err := s.images.Save("ads", id, filename, image)
	if err != nil {
		return "", err
	}
	if err := s.ads.UpdateImage(ctx, id, path); err != nil {
		return "", err
	}
	if existing.ImagePath != "" {
		if err := s.images.Remove(existing.ImagePath); err != nil {
			slog.Warn("remove old ad image", "path", existing.ImagePath, "err", err)
		}
	}
	return path, nil
}

func (s *AdService) Delete(ctx context.Context, p authz.Principal, id int64) error {
	existing, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModify(p, existing.UserID) {
		return apperr.ErrForbidden
	}
	if err := s.ads.Delete(ctx, id); err != nil {
		return err
	}
	if existing.ImagePath != "" {
		if err := s.images.Remove(existing.ImagePath); err != nil {
			slog.Warn("remove deleted ad image", "path", existing.ImagePath, "err", err)
		}
	}
	metrics.AdsDeleted.Inc()
	return nil
}
