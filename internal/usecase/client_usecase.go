package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidClientName  = errors.New("invalid client name")
	ErrInvalidClientEmail = errors.New("invalid client email")
)

// IClientUseCase manages the client account records the contract flow
// resolves actors against.

type IClientUseCase interface {
	Create(ctx context.Context, name, email, phone string) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
}

type ClientUseCase struct {
	repo interfaces.IClientRepository
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(repo interfaces.IClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

func (u *ClientUseCase) Create(ctx context.Context, name, email, phone string) (entities.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Client{}, ErrInvalidClientName
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return entities.Client{}, ErrInvalidClientEmail
	}

	c := entities.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(phone),
		CreatedAt: time.Now().UTC(),
	}
	return u.repo.Create(ctx, c)
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) List(ctx context.Context) ([]entities.Client, error) {
	return u.repo.List(ctx)
}
