package identity

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/docsearch/docsearch/internal/platform/apperr"
	"github.com/docsearch/docsearch/internal/platform/auth"
)

// -- Mock Repository --

type mockUserRepo struct {
	users map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperr.Conflict("user already exists")
		}
	}
	u.ID = uuid.New()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

const testSecret = "test-secret"

func newTestService() (*Service, *mockUserRepo) {
	repo := newMockUserRepo()
	return NewService(repo, testSecret), repo
}

// -- Register --

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	u, token, err := svc.Register(context.Background(), "Alice Smith", "alice@example.com", "secret1", RolePatient)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("expected user id to be assigned")
	}
	if u.Role != RolePatient {
		t.Errorf("role = %q, want %q", u.Role, RolePatient)
	}
	if token == "" {
		t.Error("expected a token")
	}

	claims, err := auth.ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != u.ID.String() {
		t.Errorf("token uid = %q, want %q", claims.UserID, u.ID.String())
	}
	if claims.Role != RolePatient {
		t.Errorf("token role = %q, want %q", claims.Role, RolePatient)
	}
}

func TestRegisterTrimsName(t *testing.T) {
	svc, _ := newTestService()
	u, _, err := svc.Register(context.Background(), "  Bob  ", "bob@example.com", "secret1", RoleDoctor)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Name != "Bob" {
		t.Errorf("name = %q, want %q", u.Name, "Bob")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		role     string
	}{
		{"short name", "A", "a@example.com", "secret1", RolePatient},
		{"whitespace name", "   ", "a@example.com", "secret1", RolePatient},
		{"bad email", "Alice", "not-an-email", "secret1", RolePatient},
		{"email without tld", "Alice", "a@example", "secret1", RolePatient},
		{"email with spaces", "Alice", "a b@example.com", "secret1", RolePatient},
		{"short password", "Alice", "a@example.com", "12345", RolePatient},
		{"bad role", "Alice", "a@example.com", "secret1", "admin"},
		{"empty role", "Alice", "a@example.com", "secret1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password, tc.role)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1", RolePatient); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), "Other Alice", "alice@example.com", "secret2", RoleDoctor)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("err = %v, want conflict error", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newTestService()
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1", RolePatient)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	stored := repo.users[u.ID]
	if stored.PasswordHash == "secret1" {
		t.Error("password stored unhashed")
	}
	if !auth.CheckPassword(stored.PasswordHash, "secret1") {
		t.Error("stored hash does not verify original password")
	}
}

// -- Login --

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	reg, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1", RolePatient)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, token, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != reg.ID {
		t.Errorf("user id = %v, want %v", u.ID, reg.ID)
	}
	if token == "" {
		t.Error("expected a token")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1", RolePatient); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unknown email and wrong password must produce the same message so
	// login cannot be used to probe which accounts exist.
	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "secret1")
	_, _, errWrong := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	for _, err := range []error{errUnknown, errWrong} {
		if !apperr.IsKind(err, apperr.KindAuthentication) {
			t.Errorf("err = %v, want authentication error", err)
		}
		if err == nil || !strings.Contains(err.Error(), "invalid credentials") {
			t.Errorf("err = %v, want generic invalid credentials message", err)
		}
	}
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Login(context.Background(), "not-an-email", "secret1"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad email: err = %v, want validation error", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@example.com", ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("empty password: err = %v, want validation error", err)
	}
}

// -- CurrentUser --

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService()
	reg, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1", RolePatient)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.CurrentUser(context.Background(), reg.ID.String())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q", u.Email)
	}
}

func TestCurrentUserErrors(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.CurrentUser(context.Background(), "not-a-uuid"); !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("bad id: err = %v, want authentication error", err)
	}
	if _, err := svc.CurrentUser(context.Background(), uuid.NewString()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown id: err = %v, want not found error", err)
	}
}
