package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/FrankoSolomun/movie-watchlist/internal/models"
	"github.com/FrankoSolomun/movie-watchlist/internal/repository"
)

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" {
		return nil, validationError("username and email are required")
	}
	user, err := s.repo.CreateUser(req)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, validationError("email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUser(id int) (*models.User, error) {
	user, err := s.repo.GetUser(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
