package processor

import (
	"database/sql"

	"commentwidget/pkg/logger"
	"commentwidget/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// StatsSource - пул соединений (*sql.DB)
type StatsSource interface {
	Stats() sql.DBStats
}

// PoolStatsCollector по расписанию переносит sql.DBStats в gauge-метрики
type PoolStatsCollector struct {
	cron    *cron.Cron
	source  StatsSource
	service string
}

func NewPoolStatsCollector(source StatsSource, serviceName string) *PoolStatsCollector {
	return &PoolStatsCollector{
		cron:    cron.New(cron.WithLogger(cronLogger{})),
		source:  source,
		service: serviceName,
	}
}

// Start регистрирует задачу и сразу снимает первые значения
func (p *PoolStatsCollector) Start(schedule string) error {
	if _, err := p.cron.AddFunc(schedule, p.Collect); err != nil {
		return err
	}

	p.cron.Start()
	p.Collect()

	logger.Info().Str("schedule", schedule).Msg("Pool stats collector started")
	return nil
}

// Stop ждет завершения текущего запуска
func (p *PoolStatsCollector) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Pool stats collector stopped")
}

func (p *PoolStatsCollector) Collect() {
	stats := p.source.Stats()

	metrics.DbConnectionsOpen.WithLabelValues(p.service, "idle").Set(float64(stats.Idle))
	metrics.DbConnectionsOpen.WithLabelValues(p.service, "in_use").Set(float64(stats.InUse))
	metrics.DbConnectionsWaitTotal.WithLabelValues(p.service).Set(float64(stats.WaitCount))
}

func (p *PoolStatsCollector) Entries() []cron.Entry {
	return p.cron.Entries()
}

// cronLogger направляет сообщения cron в общий zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
