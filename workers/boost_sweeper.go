package workers

import (
	"context"
	"errors"
	"log"
	"time"

	"perk-boost-system/events"
	"perk-boost-system/models"
	"perk-boost-system/services"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// BoostSweeper retires boosts whose expiry has passed and announces each
// retirement. One instance runs per process; the schedule never overlaps
// with itself, so a slow sweep skips the next tick instead of duplicating
// expiry events.
type BoostSweeper struct {
	DB        *gorm.DB
	Bus       *events.Bus
	Analytics *services.AnalyticsService
	Interval  time.Duration

	sched gocron.Scheduler
}

func NewBoostSweeper(db *gorm.DB, bus *events.Bus, analytics *services.AnalyticsService, interval time.Duration) *BoostSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &BoostSweeper{DB: db, Bus: bus, Analytics: analytics, Interval: interval}
}

// Start schedules the recurring sweep, with an eager first run at startup.
// Failures inside a sweep are logged and retried on the next tick; they must
// never crash the scheduler.
func (w *BoostSweeper) Start(ctx context.Context) {
	sched, _ := gocron.NewScheduler()
	w.sched = sched

	_, _ = sched.NewJob(
		gocron.DurationJob(w.Interval),
		gocron.NewTask(func() {
			if err := w.RunOnce(ctx); err != nil {
				log.Printf("❌ [SWEEPER] sweep failed, will retry next tick: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)

	sched.Start()
	log.Printf("✅ Boost sweeper running (every %s)", w.Interval)
}

// Stop shuts the scheduler down. In-flight sweeps finish or roll back whole.
func (w *BoostSweeper) Stop() {
	if w.sched != nil {
		_ = w.sched.Shutdown()
	}
}

// RunOnce performs one sweep. It is idempotent: the due-boost query only
// matches rows that are still flagged active, so a second run with nothing
// newly expired is a no-op, and a rolled-back sweep simply re-selects the
// same rows next tick.
func (w *BoostSweeper) RunOnce(ctx context.Context) error {
	now := time.Now()

	var due []models.ActiveBoost
	if err := w.DB.WithContext(ctx).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
		Preload("Perk").
		Order("expires_at ASC, id ASC").
		Find(&due).Error; err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	err := w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One bulk statement over the same expiry predicate, not row-by-row.
		if err := tx.Model(&models.ActiveBoost{}).
			Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
			Update("is_active", false).Error; err != nil {
			return err
		}

		for _, b := range due {
			w.announceExpiry(&b)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("🧹 [SWEEPER] retired %d expired boost(s)", len(due))
	return nil
}

// ExpireBoost force-expires a single boost outside the periodic cadence,
// with the same event and analytics contract as the bulk path. Expiring an
// already-retired boost is a no-op.
func (w *BoostSweeper) ExpireBoost(boostID string) error {
	var boost models.ActiveBoost
	if err := w.DB.Preload("Perk").First(&boost, "id = ?", boostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrBoostNotFound
		}
		return err
	}
	if !boost.IsActive {
		return nil
	}

	res := w.DB.Model(&models.ActiveBoost{}).
		Where("id = ? AND is_active = ?", boostID, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil // another retirement path got there first
	}

	w.announceExpiry(&boost)
	return nil
}

func (w *BoostSweeper) announceExpiry(b *models.ActiveBoost) {
	perkName := ""
	if b.Perk != nil {
		perkName = b.Perk.Name
	}
	payload := events.ExpiredPayload{
		PlayerID: b.PlayerID,
		GameID:   b.GameID,
		BoostID:  b.ID,
		PerkID:   b.PerkID,
		PerkName: perkName,
	}
	w.Bus.Publish(events.BoostExpired, payload)
	w.Analytics.Record("boost_expired", b.PlayerID, b.GameID, b.ID, b.PerkID, payload)
}
