package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/iamasit07/photoshare/internal/domain"
)

type UserRecord struct {
	domain.User
	PasswordHash string
}

// PhotoRepo is the stub backend's whole dataset: users, photos, likes and
// favorites, held in memory.
type PhotoRepo struct {
	mu          sync.RWMutex
	nextUserID  int64
	nextPhotoID int64

	users   map[int64]*UserRecord
	byEmail map[string]int64
	photos  map[int64]*domain.Photo
	order   []int64                  // newest first
	likes   map[int64]map[int64]bool // photo -> users
	favs    map[int64][]int64        // user -> photos, newest first
	now     func() time.Time
}

func NewPhotoRepo() *PhotoRepo {
	return &PhotoRepo{
		users:   make(map[int64]*UserRecord),
		byEmail: make(map[string]int64),
		photos:  make(map[int64]*domain.Photo),
		likes:   make(map[int64]map[int64]bool),
		favs:    make(map[int64][]int64),
		now:     time.Now,
	}
}

// CreateUser stores a user; emails are unique, case-insensitively
func (r *PhotoRepo) CreateUser(fullName, email, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(email))
	if _, taken := r.byEmail[key]; taken {
		return nil, domain.ErrConflict
	}

	r.nextUserID++
	rec := &UserRecord{
		User: domain.User{
			ID:        r.nextUserID,
			FullName:  fullName,
			Email:     key,
			CreatedAt: r.now(),
		},
		PasswordHash: passwordHash,
	}
	r.users[rec.ID] = rec
	r.byEmail[key] = rec.ID
	u := rec.User
	return &u, nil
}

func (r *PhotoRepo) GetUserByEmail(email string) (*UserRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, false
	}
	rec := *r.users[id]
	return &rec, true
}

func (r *PhotoRepo) GetUserByID(id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := rec.User
	return &u, nil
}

func (r *PhotoRepo) SetProfilePicture(userID int64, url string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.ProfilePicture = url
	for _, p := range r.photos {
		if p.UserID == userID {
			p.Author.ProfilePicture = url
		}
	}
	u := rec.User
	return &u, nil
}

func (r *PhotoRepo) CreatePhoto(userID int64, title, description, imageURL string) (*domain.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	r.nextPhotoID++
	p := &domain.Photo{
		ID:          r.nextPhotoID,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		UserID:      userID,
		Author: domain.Author{
			ID:             owner.ID,
			FullName:       owner.FullName,
			ProfilePicture: owner.ProfilePicture,
		},
		CreatedAt: r.now(),
	}
	r.photos[p.ID] = p
	r.order = append([]int64{p.ID}, r.order...)
	return r.viewLocked(p, userID), nil
}

func (r *PhotoRepo) DeletePhoto(userID, photoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.photos[photoID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.UserID != userID {
		return domain.ErrUnauthorized
	}
	delete(r.photos, photoID)
	delete(r.likes, photoID)
	r.order = without(r.order, photoID)
	for uid, ids := range r.favs {
		r.favs[uid] = without(ids, photoID)
	}
	return nil
}

func (r *PhotoRepo) ListPhotos(viewer int64, page, limit int) ([]domain.Photo, domain.Pagination) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pageLocked(r.order, viewer, page, limit)
}

func (r *PhotoRepo) ListFavorites(viewer int64, page, limit int) ([]domain.Photo, domain.Pagination) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pageLocked(r.favs[viewer], viewer, page, limit)
}

func (r *PhotoRepo) GetPhoto(viewer, photoID int64) (*domain.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.photos[photoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.viewLocked(p, viewer), nil
}

// SetLike adds or removes viewer's like. Owners cannot like their own photos.
func (r *PhotoRepo) SetLike(viewer, photoID int64, liked bool) (*domain.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.photos[photoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.UserID == viewer {
		return nil, domain.ErrConflict
	}

	set := r.likes[photoID]
	if set == nil {
		set = make(map[int64]bool)
		r.likes[photoID] = set
	}
	if liked {
		set[viewer] = true
	} else {
		delete(set, viewer)
	}
	return r.viewLocked(p, viewer), nil
}

func (r *PhotoRepo) SetFavorite(viewer, photoID int64, favorited bool) (*domain.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.photos[photoID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	ids := without(r.favs[viewer], photoID)
	if favorited {
		ids = append([]int64{photoID}, ids...)
	}
	r.favs[viewer] = ids
	return r.viewLocked(p, viewer), nil
}

func (r *PhotoRepo) pageLocked(ids []int64, viewer int64, page, limit int) ([]domain.Photo, domain.Pagination) {
	page = max(page, 1)
	if limit <= 0 {
		limit = 12
	}
	total := len(ids)
	pagination := domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	start := (page - 1) * limit
	if start >= total {
		return []domain.Photo{}, pagination
	}
	end := min(start+limit, total)

	out := make([]domain.Photo, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, *r.viewLocked(r.photos[id], viewer))
	}
	return out, pagination
}

// viewLocked copies p with the counters and flags as seen by viewer.
func (r *PhotoRepo) viewLocked(p *domain.Photo, viewer int64) *domain.Photo {
	out := *p
	out.LikesCount = len(r.likes[p.ID])
	out.IsLiked = r.likes[p.ID][viewer]
	for _, id := range r.favs[viewer] {
		if id == p.ID {
			out.IsFavorited = true
			break
		}
	}
	return &out
}

func without(ids []int64, id int64) []int64 {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
