package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateClientRequest struct {
	ClientCode string `json:"client_code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
	Notes      string `json:"notes"`
}

type ClientService interface {
	CreateClient(ctx context.Context, actor workflow.Actor, req CreateClientRequest) (*model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	ListClients(ctx context.Context, page, limit int) ([]model.Client, int64, error)
	DeactivateClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
}

type clientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) ClientService {
	return &clientService{clients: clients}
}

func (s *clientService) CreateClient(ctx context.Context, actor workflow.Actor, req CreateClientRequest) (*model.Client, error) {
	if _, err := s.clients.GetByCode(ctx, req.ClientCode); err == nil {
		return nil, apperror.Conflict("client code %q already exists", req.ClientCode)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client := &model.Client{
		ClientCode: req.ClientCode,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Country:    req.Country,
		Notes:      req.Notes,
		IsActive:   true,
	}
	if actorID, err := uuid.Parse(actor.ID); err == nil {
		client.CreatedByID = &actorID
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("client %s not found", id)
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, page, limit int) ([]model.Client, int64, error) {
	return s.clients.List(ctx, page, limit)
}

func (s *clientService) DeactivateClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	client.IsActive = false
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}
