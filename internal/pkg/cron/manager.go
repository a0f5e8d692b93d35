package cron

import (
	"Picgram/internal/config"
	"Picgram/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	specs              config.CronConfig
	postCounterJob     *job.PostCounterJob
	postCounterFullJob *job.PostCounterFullJob
	mediaOrphanJob     *job.MediaOrphanJob
}

func NewCronManager(
	specs config.CronConfig,
	postCounterJob *job.PostCounterJob,
	postCounterFullJob *job.PostCounterFullJob,
	mediaOrphanJob *job.MediaOrphanJob,
) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		specs:              specs,
		postCounterJob:     postCounterJob,
		postCounterFullJob: postCounterFullJob,
		mediaOrphanJob:     mediaOrphanJob,
	}
}

// RegisterJobs 注册定时任务，表达式为空的任务不注册
func (s *Manager) RegisterJobs() error {
	jobs := []struct {
		name string
		spec string
		job  cron.Job
	}{
		{"post_counter", s.specs.PostCounter, s.postCounterJob},
		{"post_counter_full", s.specs.PostCounterFull, s.postCounterFullJob},
		{"media_orphan", s.specs.MediaOrphan, s.mediaOrphanJob},
	}
	for _, j := range jobs {
		if j.spec == "" {
			log.Warn("cron job disabled", "job", j.name)
			continue
		}
		if _, err := s.engine.AddJob(j.spec, j.job); err != nil {
			return err
		}
		log.Info("cron job registered", "job", j.name, "spec", j.spec)
	}
	return nil
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
