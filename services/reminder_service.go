// services/reminder_service.go
package services

import (
	"time"

	"surfrepair-backend/models"
	"surfrepair-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderService scans for repairs due the next business day that are
// still open and fires the delivery reminder hook for each, so the shop
// can chase boards that are about to miss their promised date.
type ReminderService struct {
	db       *gorm.DB
	notifier *Notifier
	log      *logrus.Logger
}

func NewReminderService(db *gorm.DB, notifier *Notifier, log *logrus.Logger) *ReminderService {
	return &ReminderService{db: db, notifier: notifier, log: log}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", func() {
		s.SendDueReminders(time.Now())
	})

	c.Start()
	s.log.Info("delivery reminder scheduler started")
}

// SendDueReminders fires a reminder for every open repair whose delivery
// date falls on the next business day after now.
func (s *ReminderService) SendDueReminders(now time.Time) {
	due := utils.BeginningOfDay(utils.AddBusinessDays(now, 1))

	var repairs []models.Repair
	if err := s.db.
		Where("delivery_date >= ? AND delivery_date < ?", due, due.AddDate(0, 0, 1)).
		Where("status IN ?", []string{models.StatusPending, models.StatusInProgress}).
		Find(&repairs).Error; err != nil {
		s.log.WithError(err).Error("failed to fetch repairs due for reminder")
		return
	}

	for i := range repairs {
		repair := repairs[i]
		if err := s.notifier.SendDeliveryReminder(&repair); err != nil {
			s.log.WithError(err).WithField("repair", repair.RepairNumber).Warn("delivery reminder failed")
		}
	}

	s.log.WithFields(logrus.Fields{
		"due":   due.Format("2006-01-02"),
		"count": len(repairs),
	}).Info("delivery reminders processed")
}
