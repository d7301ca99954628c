package auth

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/personal/coffee-catalog-backend/internal/users"
	pkgAuth "github.com/personal/coffee-catalog-backend/pkg/auth"
	"github.com/personal/coffee-catalog-backend/pkg/config"
	"github.com/personal/coffee-catalog-backend/pkg/db/models"
	"github.com/personal/coffee-catalog-backend/pkg/enums"
	pkgerrors "github.com/personal/coffee-catalog-backend/pkg/errors"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "coffee-catalog", ExpirationMinutes: 60}
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		PasswordConfig: testPasswordConfig(),
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRegisterThenLoginRoundtrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)

	registered, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "roaster@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Bean",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Role != enums.RoleUser {
		t.Fatalf("expected default role USER got %s", registered.Role)
	}
	if registered.AccessToken == "" {
		t.Fatal("expected access token")
	}

	loggedIn, err := svc.Login(context.Background(), LoginRequest{
		Email:    "roaster@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.Role != registered.Role {
		t.Fatalf("role changed between register and login: %s vs %s", registered.Role, loggedIn.Role)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), loggedIn.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "roaster@example.com" || claims.Role != enums.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterExplicitAdminRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)

	role := "ADMIN"
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "boss@example.com",
		Password:  "secret123",
		FirstName: "Bo",
		LastName:  "Ss",
		Role:      &role,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Role != enums.RoleAdmin {
		t.Fatalf("expected ADMIN got %s", resp.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)

	req := RegisterRequest{
		Email:     "dup@example.com",
		Password:  "secret123",
		FirstName: "Du",
		LastName:  "Plicate",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDuplicateEmail {
		t.Fatalf("expected duplicate email error got %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one user record got %d", len(repo.created))
	}
}

func TestLoginUniformInvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "known@example.com",
		Password:  "rightpassword",
		FirstName: "K",
		LastName:  "Nown",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{
		Email:    "known@example.com",
		Password: "wrongpassword",
	})
	_, unknownEmail := svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@example.com",
		Password: "whatever",
	})

	typedWrong := pkgerrors.As(wrongPassword)
	typedUnknown := pkgerrors.As(unknownEmail)
	if typedWrong == nil || typedUnknown == nil {
		t.Fatalf("expected typed errors got %v and %v", wrongPassword, unknownEmail)
	}
	if typedWrong.Code() != pkgerrors.CodeInvalidCredentials {
		t.Fatalf("unexpected code %s", typedWrong.Code())
	}
	if typedWrong.Code() != typedUnknown.Code() || typedWrong.Message() != typedUnknown.Message() {
		t.Fatal("wrong-password and unknown-email must be indistinguishable")
	}
}

func TestLoginExpiredTokenFailsParse(t *testing.T) {
	repo := newStubUserRepo()
	past := time.Now().Add(-2 * time.Hour)
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		PasswordConfig: testPasswordConfig(),
		JWTConfig:      testJWTConfig(),
		Now:            func() time.Time { return past },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "old@example.com",
		Password:  "secret123",
		FirstName: "O",
		LastName:  "Ld",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken); err == nil {
		t.Fatal("expected expired token to fail parsing")
	}
}

type stubUserRepo struct {
	byEmail map[string]*models.User
	created []*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*models.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := user.BeforeCreate(nil); err != nil {
		return nil, err
	}
	s.byEmail[user.Email] = user
	s.created = append(s.created, user)
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
