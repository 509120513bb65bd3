package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/contract"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory doubles for the repository contracts. Specifications are plain
// structs, so the fakes filter by type-switching on them.

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes map[uuid.UUID]entity.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]entity.Note)}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.Id] = *note
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note.Id]; !ok {
		return fmt.Errorf("note %s does not exist", note.Id)
	}
	r.notes[note.Id] = *note
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) match(note entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if note.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if note.UserId != s.UserID {
				return false
			}
		case specification.ByTitle:
			if note.Title != s.Title {
				return false
			}
		}
	}
	return true
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, note := range r.notes {
		if r.match(note, specs) {
			n := note
			return &n, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Note
	for _, note := range r.notes {
		if r.match(note, specs) {
			n := note
			result = append(result, &n)
		}
	}

	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" && s.Desc {
			sort.Slice(result, func(i, j int) bool {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			})
		}
	}
	return result, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]entity.User
	providers map[string]entity.UserProvider // keyed by provider+subject
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[uuid.UUID]entity.User),
		providers: make(map[string]entity.UserProvider),
	}
}

func providerKey(name, subject string) string {
	return name + ":" + subject
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	r.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		matched := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByEmail:
				if user.Email != s.Email {
					matched = false
				}
			case specification.ByID:
				if user.Id != s.ID {
					matched = false
				}
			}
		}
		if matched {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.FindOne(ctx, specification.ByID{ID: id})
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := providerKey(provider.ProviderName, provider.ProviderUserId)
	if existing, ok := r.providers[key]; ok {
		existing.AvatarURL = provider.AvatarURL
		r.providers[key] = existing
		return nil
	}
	r.providers[key] = *provider
	return nil
}

func (r *fakeUserRepo) FindUserProvider(ctx context.Context, specs ...specification.Specification) (*entity.UserProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		matched := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByProviderSubject); ok {
				if p.ProviderName != s.ProviderName || p.ProviderUserId != s.ProviderUserId {
					matched = false
				}
			}
		}
		if matched {
			pp := p
			return &pp, nil
		}
	}
	return nil, nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.AuditLog, len(r.logs))
	for i := range r.logs {
		l := r.logs[i]
		result[i] = &l
	}
	return result, nil
}

func (r *fakeAuditRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.logs)), nil
}

type fakeUow struct {
	userRepo  *fakeUserRepo
	noteRepo  *fakeNoteRepo
	auditRepo *fakeAuditRepo
	inTx      bool
}

func (u *fakeUow) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *fakeUow) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	return nil
}

func (u *fakeUow) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.inTx = false
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository {
	return u.userRepo
}

func (u *fakeUow) NoteRepository() contract.NoteRepository {
	return u.noteRepo
}

func (u *fakeUow) AuditLogRepository() contract.AuditLogRepository {
	return u.auditRepo
}

type fakeFactory struct {
	uow *fakeUow
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		uow: &fakeUow{
			userRepo:  newFakeUserRepo(),
			noteRepo:  newFakeNoteRepo(),
			auditRepo: &fakeAuditRepo{},
		},
	}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) SendWelcome(toEmail, fullName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail)
	return nil
}
