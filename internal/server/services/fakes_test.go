package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

// ---- in-memory fakes for the repository interfaces ----

type fakeUserRepo struct {
	byID   map[string]*models.User
	failWith error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[string]*models.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	user.ID = fmt.Sprintf("u-%d", len(r.byID)+1)
	user.CreatedAt = time.Now()
	r.byID[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.byID {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []*models.User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

type fakeMessageRepo struct {
	stored   []*models.Message
	listCalls int
	failWith error
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	msg.ID = fmt.Sprintf("m-%d", len(r.stored)+1)
	msg.CreatedAt = time.Now()
	r.stored = append(r.stored, msg)
	return msg, nil
}

func (r *fakeMessageRepo) ListByChannel(ctx context.Context, channel string) ([]*models.Message, error) {
	r.listCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []*models.Message
	for _, m := range r.stored {
		if m.Channel == channel {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) DeleteByChannel(ctx context.Context, channel string) error {
	if r.failWith != nil {
		return r.failWith
	}
	var kept []*models.Message
	for _, m := range r.stored {
		if m.Channel != channel {
			kept = append(kept, m)
		}
	}
	r.stored = kept
	return nil
}

func (r *fakeMessageRepo) DeleteAll(ctx context.Context) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.stored = nil
	return nil
}

type fakeNoteRepo struct {
	stored   []*models.Note
	failWith error
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	note.ID = fmt.Sprintf("n-%d", len(r.stored)+1)
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	r.stored = append(r.stored, note)
	return note, nil
}

func (r *fakeNoteRepo) List(ctx context.Context) ([]*models.Note, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.stored, nil
}

func (r *fakeNoteRepo) DeleteByID(ctx context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i, n := range r.stored {
		if n.ID == id {
			r.stored = append(r.stored[:i], r.stored[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *fakeNoteRepo) DeleteAll(ctx context.Context) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.stored = nil
	return nil
}
