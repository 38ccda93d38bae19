package application

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/launchpad/domain/achievement"
	"github.com/felixgeelhaar/launchpad/domain/effect"
	"github.com/felixgeelhaar/launchpad/infrastructure/logging"
	"github.com/felixgeelhaar/launchpad/infrastructure/telemetry"
)

// AchievementService evaluates achievement progress reports and unlocks
// achievements exactly once.
type AchievementService struct {
	store      achievement.Store
	dispatcher effect.Dispatcher
	now        func() time.Time
}

// AchievementConfig configures the achievement service.
type AchievementConfig struct {
	Store      achievement.Store
	Dispatcher effect.Dispatcher
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewAchievementService creates an achievement service.
func NewAchievementService(config AchievementConfig) (*AchievementService, error) {
	if config.Store == nil {
		return nil, errors.New("achievement store is required")
	}
	if config.Dispatcher == nil {
		return nil, errors.New("effect dispatcher is required")
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &AchievementService{
		store:      config.Store,
		dispatcher: config.Dispatcher,
		now:        config.Now,
	}, nil
}

// ReportProgress records a progress report for the user/achievement pair,
// creating the record on the first report. Out-of-range progress is
// rejected, never clamped. A completed achievement ignores further reports,
// including regressions. Crossing the completion threshold unlocks the
// achievement once and emits the unlock notification and XP award.
func (s *AchievementService) ReportProgress(ctx context.Context, userID, achievementID string, progress int) (*achievement.UserAchievement, error) {
	if userID == "" || achievementID == "" {
		return nil, achievement.ErrInvalidID
	}
	if progress < 0 || progress > achievement.CompletionThreshold {
		return nil, achievement.ErrInvalidProgress
	}

	ua, err := s.store.Get(ctx, userID, achievementID)
	created := false
	switch {
	case errors.Is(err, achievement.ErrNotFound):
		ua = achievement.New(userID, achievementID)
		created = true
	case err != nil:
		return nil, err
	}

	if ua.IsCompleted {
		return ua, nil
	}

	unlocked := ua.Report(progress, s.now())

	if created {
		err = s.store.Save(ctx, ua)
	} else {
		err = s.store.Update(ctx, ua)
	}
	if err != nil {
		return nil, err
	}

	if !unlocked {
		return ua, nil
	}

	telemetry.Metrics().RecordUnlock(ctx)
	logging.Info().
		Add(logging.UserID(userID)).
		Add(logging.Target(achievementID)).
		Msg("achievement unlocked")

	s.dispatcher.Dispatch(ctx,
		effect.NewNotify(effect.NotifyPayload{
			UserIDs:  []string{userID},
			Type:     "achievement_unlocked",
			Priority: effect.PriorityNormal,
			Title:    "Achievement unlocked",
			Message:  "You unlocked a new achievement.",
			Metadata: map[string]string{"achievement_id": achievementID},
		}),
		effect.NewAwardXP(effect.XPEventAchievementUnlock, userID, achievementID),
	)
	return ua, nil
}

// ListByUser returns all achievement records for a user.
func (s *AchievementService) ListByUser(ctx context.Context, userID string) ([]*achievement.UserAchievement, error) {
	if userID == "" {
		return nil, achievement.ErrInvalidID
	}
	return s.store.ListByUser(ctx, userID)
}
