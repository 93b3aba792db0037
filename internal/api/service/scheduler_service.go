package service

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"

	"golang-news-sentiment/internal/api/config"
	"golang-news-sentiment/pkg/logger"
	"golang-news-sentiment/pkg/utils"
)

// SchedulerService runs the analysis pipeline for configured topics on a
// cron schedule. Retention cleanup is deliberately not scheduled here; it
// stays an explicit CLI operation.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg      *config.Config
	log      *logger.Logger
	analysis AnalysisService
	cron     *cron.Cron
}

// NewSchedulerService creates the cron-backed scheduler.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, analysis AnalysisService) SchedulerService {
	return &schedulerService{
		cfg:      cfg,
		log:      log,
		analysis: analysis,
		cron:     cron.New(),
	}
}

// Start registers the analysis job and starts the cron loop.
func (s *schedulerService) Start(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled {
		s.log.Info("scheduler disabled")
		return nil
	}
	if len(s.cfg.Scheduler.Topics) == 0 {
		return errors.New("scheduler enabled but no topics configured")
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronSpec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		logger.StringField("cron_spec", s.cfg.Scheduler.CronSpec),
		logger.IntField("topics", len(s.cfg.Scheduler.Topics)),
	)
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *schedulerService) runOnce(ctx context.Context) {
	for _, topic := range s.cfg.Scheduler.Topics {
		if !utils.ShouldContinue(ctx) {
			return
		}

		_, err := s.analysis.AnalyzeTopic(ctx, topic, s.cfg.Scheduler.ArticleLimit)
		if errors.Is(err, ErrNoArticles) {
			s.log.Info("no articles for scheduled topic", logger.StringField("topic", topic))
			continue
		}
		if err != nil {
			s.log.Error("scheduled analysis failed",
				logger.StringField("topic", topic),
				logger.ErrorField(err),
			)
		}
	}
}
