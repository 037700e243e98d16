package user

import (
	"context"
	"errors"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sfirke/meutch/domain"
	"github.com/sfirke/meutch/entities"
)

type fakeUserRepository struct {
	users map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	clone := *user
	r.users[user.ID.String()] = &clone
	return nil
}

func (r *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) DeleteUser(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeJWTService struct{}

func (fakeJWTService) GenerateTokenUser(userID string, role string) string {
	return "token-for-" + userID
}

func (fakeJWTService) ValidateTokenUser(token string) (*jwtlib.Token, error) {
	return nil, nil
}

func (fakeJWTService) GetUserIDByToken(token string) (string, string, error) {
	return "", "", nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})

	req := domain.RegisterRequest{
		Email:     "sam@example.com",
		Password:  "hunter22hunter22",
		FirstName: "Sam",
		LastName:  "Field",
		City:      "Burlington",
	}

	profile, err := service.Register(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != req.Email {
		t.Errorf("email = %s", profile.Email)
	}

	stored, _ := repo.GetUserByEmail(ctx, req.Email)
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == req.Password || stored.PasswordHash == "" {
		t.Error("password stored without hashing")
	}

	_, err = service.Register(ctx, req)
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Errorf("got %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})

	req := domain.RegisterRequest{
		Email:     "sam@example.com",
		Password:  "hunter22hunter22",
		FirstName: "Sam",
		LastName:  "Field",
	}
	if _, err := service.Register(ctx, req); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := service.Login(ctx, domain.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token on successful login")
	}

	_, err = service.Login(ctx, domain.LoginRequest{Email: req.Email, Password: "wrong-password"})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Errorf("wrong password: got %v, want ErrCredentialsInvalid", err)
	}

	_, err = service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: req.Password})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Errorf("unknown email: got %v, want ErrCredentialsInvalid", err)
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	service := NewUserService(repo, fakeJWTService{})

	id := uuid.New()
	repo.users[id.String()] = &entities.User{ID: id, Email: "sam@example.com"}

	if err := service.DeleteUser(ctx, id.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.DeleteUser(ctx, id.String()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
