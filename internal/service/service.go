// Package service implements the collection operations behind the wire
// actions.
package service

import (
	"context"
	"strconv"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/dao"
	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/pkg/storage"
	"github.com/ankibridge/ankibridge-service/pkg/workerpool"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Config service behavior knobs.
type Config struct {
	// Fsrs selects the FSRS scheduler instead of SM-2
	Fsrs bool
	// RevisionLimit revisions kept per note, 0 disables history
	RevisionLimit int
	// MaxMediaBytes largest decoded media file accepted, 0 means no limit
	MaxMediaBytes int64
}

// Service carries the repositories and shared helpers used by every
// operation.
type Service struct {
	cfg    Config
	logger *zap.Logger

	decks     domain.DeckRepository
	models    domain.NoteTypeRepository
	notes     domain.NoteRepository
	cards     domain.CardRepository
	reviews   domain.ReviewLogRepository
	revisions domain.NoteRevisionRepository
	media     domain.MediaRepository

	store storage.Storager
	pool  *workerpool.Pool

	// modelCache caches note types by name, invalidated on any model write.
	modelCache *cache.Cache
	// mediaGroup coalesces concurrent reads of the same media file.
	mediaGroup singleflight.Group
}

// New builds a Service on top of the Dao's repositories.
func New(d *dao.Dao, store storage.Storager, pool *workerpool.Pool, cfg Config, lg *zap.Logger) *Service {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Service{
		cfg:        cfg,
		logger:     lg,
		decks:      d.NewDeckRepository(),
		models:     d.NewNoteTypeRepository(),
		notes:      d.NewNoteRepository(),
		cards:      d.NewCardRepository(),
		reviews:    d.NewReviewLogRepository(),
		revisions:  d.NewNoteRevisionRepository(),
		media:      d.NewMediaRepository(),
		store:      store,
		pool:       pool,
		modelCache: cache.New(10*time.Minute, 30*time.Minute),
	}
}

// EnsureDefaultDeck creates the Default deck on first start.
func (s *Service) EnsureDefaultDeck(ctx context.Context) error {
	_, err := s.GetOrCreateDeck(ctx, defaultDeckName)
	return err
}

func nowUnix() int64 {
	return time.Now().Unix()
}

func timeNow() time.Time {
	return time.Now()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
