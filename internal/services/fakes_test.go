package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/models"
)

// In-memory repositories backing the service tests.

type fakeUsers struct {
	seq   int64
	users map[int64]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return models.User{}, fmt.Errorf("%w: username %q taken", apperr.ErrConflict, u.Username)
		}
	}
	f.seq++
	u.ID = f.seq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (models.User, bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (f *fakeUsers) Update(_ context.Context, u models.User) error {
	cur, ok := f.users[u.ID]
	if !ok {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, u.ID)
	}
	cur.FirstName, cur.LastName, cur.Phone = u.FirstName, u.LastName, u.Phone
	f.users[u.ID] = cur
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	cur, ok := f.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	cur.PasswordHash = hash
	f.users[id] = cur
	return nil
}

func (f *fakeUsers) UpdateAvatar(_ context.Context, id int64, path string) error {
	cur, ok := f.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, id)
	}
	cur.AvatarPath = &path
	f.users[id] = cur
	return nil
}

type fakeAds struct {
	seq int64
	ads map[int64]models.Ad
	// authors lets GetFull denormalize; keyed by user id.
	authors map[int64]models.User
}

func newFakeAds() *fakeAds {
	return &fakeAds{ads: map[int64]models.Ad{}, authors: map[int64]models.User{}}
}

func (f *fakeAds) Create(_ context.Context, a models.Ad) (models.Ad, error) {
	f.seq++
	a.ID = f.seq
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.ads[a.ID] = a
	return a, nil
}

func (f *fakeAds) GetByID(_ context.Context, id int64) (models.Ad, error) {
	a, ok := f.ads[id]
	if !ok {
		return models.Ad{}, fmt.Errorf("%w: ad %d", apperr.ErrNotFound, id)
	}
	return a, nil
}

func (f *fakeAds) GetFull(ctx context.Context, id int64) (models.FullAd, error) {
	a, err := f.GetByID(ctx, id)
	if err != nil {
		return models.FullAd{}, err
	}
	u := f.authors[a.UserID]
	return models.FullAd{
		Ad:              a,
		AuthorFirstName: u.FirstName,
		AuthorLastName:  u.LastName,
		AuthorPhone:     u.Phone,
		AuthorEmail:     u.Username,
	}, nil
}

func (f *fakeAds) List(_ context.Context) ([]models.Ad, error) {
	var out []models.Ad
	for _, a := range f.ads {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAds) ListByUser(_ context.Context, userID int64) ([]models.Ad, error) {
	var out []models.Ad
	for _, a := range f.ads {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAds) Update(_ context.Context, a models.Ad) error {
	cur, ok := f.ads[a.ID]
	if !ok {
		return fmt.Errorf("%w: ad %d", apperr.ErrNotFound, a.ID)
	}
	cur.Title, cur.Price, cur.Description = a.Title, a.Price, a.Description
	f.ads[a.ID] = cur
	return nil
}

func (f *fakeAds) UpdateImage(_ context.Context, id int64, path string) error {
	cur, ok := f.ads[id]
	if !ok {
		return fmt.Errorf("%w: ad %d", apperr.ErrNotFound, id)
	}
	cur.ImagePath = path
	f.ads[id] = cur
	return nil
}

func (f *fakeAds) Delete(_ context.Context, id int64) error {
	if _, ok := f.ads[id]; !ok {
		return fmt.Errorf("%w: ad %d", apperr.ErrNotFound, id)
	}
	delete(f.ads, id)
	return nil
}

type fakeComments struct {
	seq      int64
	comments map[int64]models.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{comments: map[int64]models.Comment{}}
}

func (f *fakeComments) Create(_ context.Context, c models.Comment) (models.Comment, error) {
	f.seq++
	c.ID = f.seq
	c.CreatedAt = time.Now()
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeComments) GetByID(_ context.Context, id int64) (models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return models.Comment{}, fmt.Errorf("%w: comment %d", apperr.ErrNotFound, id)
	}
	return c, nil
}

func (f *fakeComments) ListByAd(_ context.Context, adID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.AdID == adID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) Update(_ context.Context, id int64, text string) error {
	cur, ok := f.comments[id]
	if !ok {
		return fmt.Errorf("%w: comment %d", apperr.ErrNotFound, id)
	}
	cur.Text = text
	f.comments[id] = cur
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return fmt.Errorf("%w: comment %d", apperr.ErrNotFound, id)
	}
	delete(f.comments, id)
	return nil
}
