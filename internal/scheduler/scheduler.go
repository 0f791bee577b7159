package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler периодически запускает очистку устаревших сессий
type Scheduler struct {
	cron        *cron.Cron
	schedule    string
	cleanupFunc func() int
}

// New создает планировщик с cron-расписанием очистки
func New(schedule string, cleanupFunc func() int) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		schedule:    schedule,
		cleanupFunc: cleanupFunc,
	}
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		removed := s.cleanupFunc()
		if removed > 0 {
			log.Printf("🕘 Scheduled cleanup removed %d sessions", removed)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started with cleanup schedule %q", s.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения задач
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("📅 Scheduler stopped")
}

// IsRunning проверяет, запущен ли планировщик
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
