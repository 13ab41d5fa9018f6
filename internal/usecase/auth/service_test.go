package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gigboard/internal/domain/user"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User

	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: map[string]user.User{},
		byID:    map[uuid.UUID]user.User{},
	}
}

func (m *mockUserRepo) Create(ctx context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	return ok && u.ID != id, nil
}

func (m *mockUserRepo) UpdateDetails(ctx context.Context, id uuid.UUID, name, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	delete(m.byEmail, u.Email)
	u.Name = name
	u.Email = email
	m.byID[id] = u
	m.byEmail[email] = u
	return u, nil
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	m.byID[id] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) ListIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uuid.UUID
	for id, u := range m.byID {
		if u.Role == role {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:            "Ada Lovelace",
		Email:           "Ada@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            user.RoleFreelancer,
	}
}

func TestRegisterAndLoginRoundtrip(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked in register response")
	}

	got, err := svc.Login(ctx, LoginInput{Email: "ADA@example.COM", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login returned wrong user")
	}
	if got.PasswordHash != "" {
		t.Fatalf("password hash leaked in login response")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, validRegisterInput()); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("want ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	in := validRegisterInput()
	in.Role = "admin"
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad role: want ErrInvalidInput, got %v", err)
	}

	in = validRegisterInput()
	in.ConfirmPassword = "other"
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("mismatch: want ErrPasswordMismatch, got %v", err)
	}

	in = validRegisterInput()
	in.Password = "abc"
	in.ConfirmPassword = "abc"
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short: want ErrPasswordTooShort, got %v", err)
	}
}

func TestLoginUniformFailure(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	_, wrongErr := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong"})

	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email and wrong password must fail identically: %v vs %v", unknownErr, wrongErr)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = svc.ChangePassword(ctx, u.ID, ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
		ConfirmPassword: "newsecret",
	})
	if !errors.Is(err, ErrWrongCurrentPassword) {
		t.Fatalf("want ErrWrongCurrentPassword, got %v", err)
	}

	if _, err = svc.ChangePassword(ctx, u.ID, ChangePasswordInput{
		CurrentPassword: "secret1",
		NewPassword:     "newsecret",
		ConfirmPassword: "newsecret",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "newsecret"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still valid: %v", err)
	}
}
