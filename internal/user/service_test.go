package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/repository"
)

// --- モック定義 ---

type mockUserRepo struct {
	findByIDFn           func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn        func(ctx context.Context, email string) (*model.User, error)
	createFn             func(ctx context.Context, user *model.User) error
	createWithIdentityFn func(ctx context.Context, user *model.User, identity *model.Identity) error
	updateNameFn         func(ctx context.Context, id, name string) (*model.User, error)
	deleteCascadeFn      func(ctx context.Context, id string) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error {
	if m.createWithIdentityFn != nil {
		return m.createWithIdentityFn(ctx, user, identity)
	}
	return nil
}

func (m *mockUserRepo) UpdateName(ctx context.Context, id, name string) (*model.User, error) {
	if m.updateNameFn != nil {
		return m.updateNameFn(ctx, id, name)
	}
	return nil, nil
}

func (m *mockUserRepo) DeleteCascade(ctx context.Context, id string) error {
	if m.deleteCascadeFn != nil {
		return m.deleteCascadeFn(ctx, id)
	}
	return nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// --- テスト ---

func TestGetProfile_ReturnsUser(t *testing.T) {
	ctx := context.Background()

	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "user@example.com", Name: "Test User"}, nil
		},
	}

	svc := NewService(repo)

	user, err := svc.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}

	if user.ID != "user-1" {
		t.Errorf("user ID = %q, want %q", user.ID, "user-1")
	}
	if user.Email != "user@example.com" {
		t.Errorf("user email = %q, want %q", user.Email, "user@example.com")
	}
}

func TestGetProfile_UserNotFound_ReturnsError(t *testing.T) {
	ctx := context.Background()

	svc := NewService(&mockUserRepo{})

	_, err := svc.GetProfile(ctx, "missing-user")
	if err == nil {
		t.Fatal("expected error for missing user")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeUserNotFound)
	}
}

func TestUpdateName_TrimsAndPersists(t *testing.T) {
	ctx := context.Background()

	var persistedName string
	repo := &mockUserRepo{
		updateNameFn: func(ctx context.Context, id, name string) (*model.User, error) {
			persistedName = name
			return &model.User{ID: id, Name: name}, nil
		},
	}

	svc := NewService(repo)

	user, err := svc.UpdateName(ctx, "user-1", "  New Name  ")
	if err != nil {
		t.Fatalf("UpdateName() error = %v", err)
	}

	// 永続化される値はトリム後の文字列であること
	if persistedName != "New Name" {
		t.Errorf("persisted name = %q, want %q", persistedName, "New Name")
	}
	if user.Name != "New Name" {
		t.Errorf("returned name = %q, want %q", user.Name, "New Name")
	}
}

func TestUpdateName_LengthBoundaries(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"1 char", "a", true},
		{"2 chars (min)", "ab", false},
		{"50 chars (max)", strings.Repeat("x", 50), false},
		{"51 chars", strings.Repeat("x", 51), true},
		{"50 multibyte chars", strings.Repeat("あ", 50), false},
		{"51 multibyte chars", strings.Repeat("あ", 51), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var updated bool
			repo := &mockUserRepo{
				updateNameFn: func(ctx context.Context, id, name string) (*model.User, error) {
					updated = true
					return &model.User{ID: id, Name: name}, nil
				},
			}

			svc := NewService(repo)

			_, err := svc.UpdateName(ctx, "user-1", tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				var apiErr *model.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %T", err)
				}
				if apiErr.Code != model.ErrCodeInvalidName {
					t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeInvalidName)
				}
				if updated {
					t.Error("name should not be persisted on validation failure")
				}
			} else if err != nil {
				t.Fatalf("UpdateName() error = %v", err)
			}
		})
	}
}

func TestUpdateName_UserNotFound_ReturnsError(t *testing.T) {
	ctx := context.Background()

	repo := &mockUserRepo{
		updateNameFn: func(ctx context.Context, id, name string) (*model.User, error) {
			return nil, nil
		},
	}

	svc := NewService(repo)

	_, err := svc.UpdateName(ctx, "missing-user", "Valid Name")
	if err == nil {
		t.Fatal("expected error for missing user")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeUserNotFound)
	}
}

func TestWithdraw_DeletesAccountCascade(t *testing.T) {
	ctx := context.Background()

	var cascadeUserID string
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "user@example.com"}, nil
		},
		deleteCascadeFn: func(ctx context.Context, id string) error {
			cascadeUserID = id
			return nil
		},
	}

	svc := NewService(repo)

	if err := svc.Withdraw(ctx, "user-1"); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	if cascadeUserID != "user-1" {
		t.Errorf("cascade delete userID = %q, want %q", cascadeUserID, "user-1")
	}
}

func TestWithdraw_UserNotFound_ReturnsError(t *testing.T) {
	ctx := context.Background()

	var cascadeCalled bool
	repo := &mockUserRepo{
		deleteCascadeFn: func(ctx context.Context, id string) error {
			cascadeCalled = true
			return nil
		},
	}

	svc := NewService(repo)

	err := svc.Withdraw(ctx, "missing-user")
	if err == nil {
		t.Fatal("expected error for missing user")
	}
	if cascadeCalled {
		t.Error("cascade delete should not run for missing user")
	}
}

func TestWithdraw_CascadeError_ReturnsError(t *testing.T) {
	ctx := context.Background()

	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		deleteCascadeFn: func(ctx context.Context, id string) error {
			return errors.New("tx rolled back")
		},
	}

	svc := NewService(repo)

	if err := svc.Withdraw(ctx, "user-1"); err == nil {
		t.Fatal("expected error when cascade delete fails")
	}
}
