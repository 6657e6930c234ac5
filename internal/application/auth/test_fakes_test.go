package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"school-portal/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID       map[int64]domain.User
	byUsername map[string]domain.User
	nextID     int64

	// injected errors (if set, method returns error)
	getByIDErr       error
	getByUsernameErr error
	createErr        error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[int64]domain.User{},
		byUsername: map[string]domain.User{},
		nextID:     1,
	}
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByUsernameErr != nil {
		return domain.User{}, f.getByUsernameErr
	}
	u, ok := f.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byUsername[u.Username]; exists {
		return domain.User{}, domain.ErrUsernameTaken()
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
	return u, nil
}

// add seeds a user directly, bypassing Create's collision check.
func (f *fakeUserRepo) add(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSessionStore struct {
	mu sync.Mutex

	byToken map[string]int64
	nextTok int

	createErr  error
	resolveErr error
	revokeErr  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byToken: map[string]int64{}}
}

func (f *fakeSessionStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextTok++
	tok := fmt.Sprintf("tok-%d", f.nextTok)
	f.byToken[tok] = userID
	return tok, nil
}

func (f *fakeSessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolveErr != nil {
		return 0, f.resolveErr
	}
	uid, ok := f.byToken[token]
	if !ok {
		return 0, domain.ErrSessionInvalid()
	}
	return uid, nil
}

func (f *fakeSessionStore) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.revokeErr != nil {
		return f.revokeErr
	}
	delete(f.byToken, token)
	return nil
}

func (f *fakeSessionStore) RevokeAll(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for tok, uid := range f.byToken {
		if uid == userID {
			delete(f.byToken, tok)
		}
	}
	return nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSessionStore) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	sessions := newFakeSessionStore()
	svc := NewService(users, hasher, sessions, Config{SessionTTL: time.Hour})
	return svc, users, hasher, sessions
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if !domain.Is(err, code) {
		t.Fatalf("expected domain code %q, got %v", code, err)
	}
}
