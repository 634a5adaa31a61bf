package service

import (
	"context"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
)

type aliasService struct {
	aliases repository.AliasRepo
}

// NewAliasService creates the service managing short names for tickets.
func NewAliasService(aliases repository.AliasRepo) AliasService {
	return &aliasService{aliases: aliases}
}

func (s *aliasService) Add(ctx context.Context, ticketID, alias string) error {
	return s.aliases.Add(ctx, ticketID, alias)
}

func (s *aliasService) Remove(ctx context.Context, alias string) (bool, error) {
	return s.aliases.Remove(ctx, alias)
}

func (s *aliasService) Resolve(ctx context.Context, ref string) (string, error) {
	ticketID, err := s.aliases.Load(ctx, ref)
	if err != nil {
		return "", err
	}
	if ticketID == "" {
		return ref, nil
	}
	return ticketID, nil
}

func (s *aliasService) List(ctx context.Context, ticketID string) ([]domain.Alias, error) {
	return s.aliases.List(ctx, ticketID)
}
