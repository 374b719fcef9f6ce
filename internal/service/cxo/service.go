package cxo

import (
	"context"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/cxo"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/validator"
)

type CXOServiceImpl struct {
	cxo.CXORepository
}

func NewCXOService(cxoRepository cxo.CXORepository) cxo.CXOService {
	return &CXOServiceImpl{CXORepository: cxoRepository}
}

// Add implements cxo.CXOService.
func (s *CXOServiceImpl) Add(ctx context.Context, email, name, title string) (cxo.CXO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !validator.IsValidEmail(email) {
		return cxo.CXO{}, cxo.ErrEmailRequired
	}

	entry := cxo.CXO{
		Email: email,
		Name:  strings.TrimSpace(name),
		Title: strings.TrimSpace(title),
	}
	if err := s.CXORepository.Create(ctx, &entry); err != nil {
		return cxo.CXO{}, err
	}
	return entry, nil
}

// List implements cxo.CXOService.
func (s *CXOServiceImpl) List(ctx context.Context) ([]cxo.CXO, error) {
	entries, err := s.CXORepository.List(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []cxo.CXO{}
	}
	return entries, nil
}

// Remove implements cxo.CXOService.
func (s *CXOServiceImpl) Remove(ctx context.Context, id int64) error {
	return s.CXORepository.Delete(ctx, id)
}

// EmailSet implements cxo.CXOService.
func (s *CXOServiceImpl) EmailSet(ctx context.Context) (map[string]struct{}, error) {
	entries, err := s.CXORepository.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[strings.ToLower(strings.TrimSpace(e.Email))] = struct{}{}
	}
	return set, nil
}
