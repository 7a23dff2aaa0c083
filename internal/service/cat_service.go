package service

import (
	"sync"

	"fees-api/internal/models"
)

// CatService is a small in-memory demo module, handy for poking at the API
// without a database.
type CatService struct {
	mu   sync.RWMutex
	cats []models.Cat
}

func NewCatService() *CatService {
	return &CatService{cats: []models.Cat{}}
}

func (s *CatService) FindAll() []models.Cat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cats := make([]models.Cat, len(s.cats))
	copy(cats, s.cats)
	return cats
}

func (s *CatService) Create(cat models.Cat) models.Cat {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cats = append(s.cats, cat)
	return cat
}
