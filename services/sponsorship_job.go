package services

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SponsorshipJobManager owns the scheduled housekeeping around sponsorships.
type SponsorshipJobManager struct {
	cron *cron.Cron
	db   *gorm.DB
}

func NewSponsorshipJobManager(db *gorm.DB) *SponsorshipJobManager {
	return &SponsorshipJobManager{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers and starts the jobs.
func (m *SponsorshipJobManager) Start() error {
	service := NewSponsorshipService(m.db)

	// Daily at 02:00: cancel sponsorships abandoned in PENDING_PAYMENT past
	// the cooldown window so they stop blocking new attempts.
	if _, err := m.cron.AddFunc("0 2 * * *", func() {
		expired, err := service.ExpireStalePending()
		if err != nil {
			log.Printf("[CRON] expire_stale_pending failed: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("[CRON] expire_stale_pending cancelled %d sponsorships", expired)
		}
	}); err != nil {
		return err
	}

	m.cron.Start()
	log.Println("Sponsorship housekeeping jobs started")
	return nil
}

// Stop waits for running jobs to finish.
func (m *SponsorshipJobManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Sponsorship housekeeping jobs stopped")
}
