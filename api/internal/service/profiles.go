package service

import (
	"fmt"

	"payout/api/internal/domain"
	"payout/api/internal/infra/postgres"
	"payout/api/internal/repository"

	"gorm.io/gorm"
)

type ProfilesService struct {
	repo repository.Profiles
	db   *gorm.DB
}

func NewProfilesService(db *gorm.DB, repo repository.Profiles) *ProfilesService {
	return &ProfilesService{repo: repo, db: db}
}

func (s *ProfilesService) Find(userId string) (*domain.Profiles, error) {
	profile, err := s.repo.Find(s.db, userId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return profile, nil
}

func (s *ProfilesService) Create(profile *domain.Profiles) error {
	if err := s.repo.Create(s.db, profile); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
