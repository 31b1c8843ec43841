package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"microsvc/internal/domain"
	"microsvc/internal/repository"
)

// CodeGenerator defines the interface for short code generation.
type CodeGenerator interface {
	Generate() string
	Valid(code string) bool
}

// URLService handles URL shortening business logic.
type URLService struct {
	repo      repository.LinkRepository
	generator CodeGenerator
	clock     domain.Clock
}

// NewURLService creates a new URLService.
func NewURLService(repo repository.LinkRepository, generator CodeGenerator, clock domain.Clock) *URLService {
	return &URLService{
		repo:      repo,
		generator: generator,
		clock:     clock,
	}
}

// Shorten stores url under a freshly generated code.
// Collisions are retried with a new code until the store accepts one;
// only a storage error or ctx cancellation ends the loop early.
func (s *URLService) Shorten(ctx context.Context, url string) (*domain.ShortLink, error) {
	now := s.clock.Now()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		link := &domain.ShortLink{
			Code:      s.generator.Generate(),
			URL:       url,
			CreatedAt: now,
		}

		err := s.repo.SaveIfNotExists(ctx, link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, domain.ErrCodeExists) {
			return nil, fmt.Errorf("saving link: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"code":    link.Code,
			"attempt": attempt,
		}).Debug("short code collision, regenerating")
	}
}

// Resolve returns the original URL for code and counts one click.
// Returns domain.ErrNotFound for unknown codes.
func (s *URLService) Resolve(ctx context.Context, code string) (string, error) {
	if !s.generator.Valid(code) {
		return "", domain.ErrNotFound
	}

	link, err := s.repo.FindByShortCode(ctx, code)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.IncrementClickCount(ctx, code); err != nil {
		return "", fmt.Errorf("counting click: %w", err)
	}

	return link.URL, nil
}

// Stats returns the stored link for code.
// Returns domain.ErrNotFound for unknown codes.
func (s *URLService) Stats(ctx context.Context, code string) (*domain.ShortLink, error) {
	if !s.generator.Valid(code) {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByShortCode(ctx, code)
}
