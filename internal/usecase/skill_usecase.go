package usecase

import (
	"context"
	"sync"

	"skill-community/internal/domain/skill"
	"skill-community/internal/pkg/logger"
	"skill-community/internal/repository"
)

type SkillUsecase interface {
	Vocabulary() skill.Vocabulary
	Search(query string) skill.SearchResult
	Reload(ctx context.Context) error
}

// Skills holds the known skill vocabulary. It is loaded from the repository
// and keeps the built-in defaults when loading fails.
type Skills struct {
	repo   repository.SkillRepository
	logger logger.Logger

	mu    sync.RWMutex
	vocab skill.Vocabulary
}

func NewSkillUsecase(repo repository.SkillRepository, log logger.Logger) *Skills {
	if log == nil {
		log = logger.NewNop()
	}
	return &Skills{repo: repo, logger: log, vocab: skill.NewVocabulary(nil)}
}

func (u *Skills) Reload(ctx context.Context) error {
	if u.repo == nil {
		return nil
	}
	names, err := u.repo.ListSkillNames(ctx)
	if err != nil {
		u.logger.Warn("Skills", "vocabulary load failed, keeping current", map[string]any{"error": err.Error()})
		return ErrInternal
	}

	v := skill.NewVocabulary(names)
	u.mu.Lock()
	u.vocab = v
	u.mu.Unlock()

	u.logger.Info("Skills", "vocabulary loaded", map[string]any{"count": len(v.Names())})
	return nil
}

func (u *Skills) Vocabulary() skill.Vocabulary {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.vocab
}

func (u *Skills) Search(query string) skill.SearchResult {
	return u.Vocabulary().Search(query)
}

var _ SkillUsecase = (*Skills)(nil)
