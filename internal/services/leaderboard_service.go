package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/game"
)

// TopLimit caps a leaderboard page.
const TopLimit = 50

// ErrUnknownBoard is returned for a variant with no board behind it.
var ErrUnknownBoard = errors.New("unknown leaderboard")

// LeaderboardService serves the paginated pig boards.
type LeaderboardService struct {
	DB   *gorm.DB
	Repo LeaderboardRepository
}

// NewLeaderboardService constructs a LeaderboardService.
func NewLeaderboardService(db *gorm.DB, r LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{DB: db, Repo: r}
}

func pageBounds(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > TopLimit {
		pageSize = TopLimit
	}
	return (page - 1) * pageSize, pageSize
}

// ChatTop returns a page of a chat's pigs, heaviest first, and the total.
func (s *LeaderboardService) ChatTop(ctx context.Context, chatID int64, page, pageSize int) ([]domain.Pig, int64, error) {
	tr := otel.Tracer("services/LeaderboardService")
	ctx, span := tr.Start(ctx, "ChatTop",
		trace.WithAttributes(
			attribute.Int64("chat.id", chatID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	offset, limit := pageBounds(page, pageSize)

	total, err := s.Repo.CountChatPigs(ctx, s.DB, chatID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Pig{}, 0, nil
	}

	items, err := s.Repo.TopChatPigs(ctx, s.DB, chatID, offset, limit)
	return items, total, err
}

// HandTop returns a page of a global hand pig board. The global board lists
// hand pigs refreshed on the current game day; the win board ranks by duel
// wins.
func (s *LeaderboardService) HandTop(ctx context.Context, variant domain.TopVariant, now time.Time, page, pageSize int) ([]domain.Pig, int64, error) {
	tr := otel.Tracer("services/LeaderboardService")
	ctx, span := tr.Start(ctx, "HandTop",
		trace.WithAttributes(
			attribute.String("variant", string(variant)),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	offset, limit := pageBounds(page, pageSize)

	var (
		total int64
		items []domain.Pig
		err   error
	)
	switch variant.Summarize() {
	case domain.TopGlobal:
		day := game.Today(now)
		if total, err = s.Repo.CountHandPigsOn(ctx, s.DB, day); err != nil || total == 0 {
			return []domain.Pig{}, total, err
		}
		items, err = s.Repo.TopHandPigsOn(ctx, s.DB, day, offset, limit)
	case domain.TopWin:
		if total, err = s.Repo.CountWinners(ctx, s.DB); err != nil || total == 0 {
			return []domain.Pig{}, total, err
		}
		items, err = s.Repo.TopWinners(ctx, s.DB, offset, limit)
	default:
		return nil, 0, ErrUnknownBoard
	}
	return items, total, err
}
