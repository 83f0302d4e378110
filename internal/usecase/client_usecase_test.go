package usecase

import (
	"context"
	"errors"
	"testing"

	"fotostudio/internal/domain/entities"
	mock_interfaces "fotostudio/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestClientUseCase_Create(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		uc := NewClientUseCase(nil)
		_, err := uc.Create(context.Background(), "  ", "ana@example.com", "")
		if !errors.Is(err, ErrInvalidClientName) {
			t.Fatalf("expected ErrInvalidClientName, got %v", err)
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		uc := NewClientUseCase(nil)
		_, err := uc.Create(context.Background(), "Ana", "not-an-email", "")
		if !errors.Is(err, ErrInvalidClientEmail) {
			t.Fatalf("expected ErrInvalidClientEmail, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Client{})).DoAndReturn(
			func(_ context.Context, c entities.Client) (entities.Client, error) {
				if c.ID == "" || c.Name != "Ana" || c.Email != "ana@example.com" || c.Phone != "+49 151 000" {
					t.Fatalf("unexpected client: %+v", c)
				}
				if c.CreatedAt.IsZero() {
					t.Fatalf("expected created_at")
				}
				return c, nil
			},
		)

		res, err := uc.Create(context.Background(), " Ana ", " ana@example.com ", " +49 151 000 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Name != "Ana" {
			t.Fatalf("expected trimmed name, got %q", res.Name)
		}
	})
}

func TestClientUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewClientUseCase(nil)
		_, err := uc.GetByID(context.Background(), " ")
		if !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "cl-zz").Return(entities.Client{}, nil)

		_, err := uc.GetByID(context.Background(), "cl-zz")
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "cl-1").Return(entities.Client{ID: "cl-1", Name: "Ana"}, nil)

		res, err := uc.GetByID(context.Background(), "cl-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "cl-1" {
			t.Fatalf("unexpected client: %+v", res)
		}
	})
}
