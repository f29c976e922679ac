// Package services holds the delegation layer between handlers and
// repositories. The services carry no business rules of their own;
// they exist as the seam where future rules would live and to keep
// handlers off the persistence types.
package services

import (
	"context"

	"social-media-service/internal/models"
	"social-media-service/internal/repositories"
)

// AccountService delegates account operations to the repository.
type AccountService struct {
	repo repositories.AccountRepository
}

// NewAccountService constructs AccountService.
func NewAccountService(repo repositories.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register persists a new account.
func (s *AccountService) Register(ctx context.Context, account models.Account) (models.Account, error) {
	return s.repo.CreateAccount(ctx, account)
}

// Login resolves an account by exact credential match.
func (s *AccountService) Login(ctx context.Context, username, password string) (models.Account, error) {
	return s.repo.FindByCredentials(ctx, username, password)
}
