package usecase

import (
	"context"
	"errors"
	"testing"

	"gigboard/internal/domain/user"

	"github.com/google/uuid"
)

type stubUserRepo struct {
	users map[uuid.UUID]user.User
}

func (s *stubUserRepo) Create(ctx context.Context, u user.User) error { return nil }
func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) UpdateDetails(ctx context.Context, id uuid.UUID, name, email string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.Name = name
	u.Email = email
	s.users[id] = u
	return u, nil
}
func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}
func (s *stubUserRepo) ListIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	return nil, nil
}

func seedFreelancer(users *stubUserRepo) uuid.UUID {
	id := uuid.New()
	users.users[id] = user.User{ID: id, Name: "mira", Email: "mira@example.com", Role: user.RoleFreelancer}
	return id
}

func validCreateProfileInput() CreateProfileInput {
	return CreateProfileInput{
		Description:       "Backend developer",
		Skills:            []string{"Go", "Postgres"},
		YearsOfExperience: 4,
		HourlyRate:        60,
		Location:          "Berlin",
		Portfolio:         []PortfolioItemInput{{Name: "shop", URL: "https://example.com"}},
	}
}

func TestCreateProfileAssignsItemIDsAndConflicts(t *testing.T) {
	profiles := newMockProfileRepo()
	users := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	svc := NewProfileUsecase(profiles, users)
	ctx := context.Background()
	freelancerID := seedFreelancer(users)

	p, err := svc.Create(ctx, freelancerID, validCreateProfileInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(p.Portfolio) != 1 || p.Portfolio[0].ID == uuid.Nil {
		t.Fatalf("portfolio item must get an id: %+v", p.Portfolio)
	}

	if _, err := svc.Create(ctx, freelancerID, validCreateProfileInput()); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("second create: want ErrProfileExists, got %v", err)
	}
}

func TestGetProfileWithoutOneReturnsIdentityOnly(t *testing.T) {
	profiles := newMockProfileRepo()
	users := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	svc := NewProfileUsecase(profiles, users)
	freelancerID := seedFreelancer(users)

	view, err := svc.Get(context.Background(), freelancerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Profile != nil {
		t.Fatalf("profile should be nil before creation")
	}
	if view.Avatar != "M" {
		t.Fatalf("avatar letter: got %q", view.Avatar)
	}
}

func TestUpdateProfileNestedItemPatch(t *testing.T) {
	profiles := newMockProfileRepo()
	users := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	svc := NewProfileUsecase(profiles, users)
	ctx := context.Background()
	freelancerID := seedFreelancer(users)

	p, err := svc.Create(ctx, freelancerID, validCreateProfileInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	itemID := p.Portfolio[0].ID

	newName := "storefront"
	updated, err := svc.Update(ctx, freelancerID, UpdateProfileInput{
		Portfolio: []PortfolioItemPatch{{ID: &itemID, Name: &newName}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Portfolio[0].Name != "storefront" {
		t.Fatalf("patch missed: %+v", updated.Portfolio[0])
	}
	if updated.Portfolio[0].URL != "https://example.com" {
		t.Fatalf("untouched field changed: %+v", updated.Portfolio[0])
	}

	// patch without an id appends
	extraName := "blog"
	extraURL := "https://blog.example.com"
	updated, err = svc.Update(ctx, freelancerID, UpdateProfileInput{
		Portfolio: []PortfolioItemPatch{{Name: &extraName, URL: &extraURL}},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(updated.Portfolio) != 2 {
		t.Fatalf("append missed: %d items", len(updated.Portfolio))
	}

	unknown := uuid.New()
	if _, err := svc.Update(ctx, freelancerID, UpdateProfileInput{
		Portfolio: []PortfolioItemPatch{{ID: &unknown, Name: &newName}},
	}); !errors.Is(err, ErrProfileItemNotFound) {
		t.Fatalf("unknown item: want ErrProfileItemNotFound, got %v", err)
	}
}

func TestUpdateProfileEmptyPatchRejected(t *testing.T) {
	profiles := newMockProfileRepo()
	users := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	svc := NewProfileUsecase(profiles, users)
	freelancerID := seedFreelancer(users)

	if _, err := svc.Update(context.Background(), freelancerID, UpdateProfileInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty patch: want ErrInvalidInput, got %v", err)
	}
}

func TestAvatarLetter(t *testing.T) {
	cases := map[string]string{
		"mira":   "M",
		" zed":   "Z",
		"":       "?",
		"   ":    "?",
		"Quincy": "Q",
	}
	for in, want := range cases {
		if got := AvatarLetter(in); got != want {
			t.Fatalf("AvatarLetter(%q) = %q, want %q", in, got, want)
		}
	}
}
