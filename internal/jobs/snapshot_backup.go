package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"solverpro/internal/config"
	"solverpro/internal/models"
)

// Snapshotter is the read side of the problem store.
type Snapshotter interface {
	Snapshot() []models.ProblemRecord
}

// SnapshotBackupJob periodically writes the problem snapshot to a JSON file.
type SnapshotBackupJob struct {
	source Snapshotter
	config config.BackupConfig
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time
}

func NewSnapshotBackupJob(source Snapshotter, cfg config.BackupConfig, logger *zap.Logger) *SnapshotBackupJob {
	return &SnapshotBackupJob{
		source: source,
		config: cfg,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Start begins the scheduled backup job
func (j *SnapshotBackupJob) Start() error {
	if !j.config.Enabled {
		j.logger.Info("Snapshot backup is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if _, err := j.RunBackup(); err != nil {
			j.logger.Error("Backup job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}

	j.cron.Start()
	j.logger.Info("Snapshot backup started", zap.String("schedule", j.config.Schedule), zap.String("dir", j.config.Dir))
	return nil
}

// Stop waits for a running backup to finish.
func (j *SnapshotBackupJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// RunBackup writes one backup file and returns its path. An empty snapshot
// writes nothing and returns "".
func (j *SnapshotBackupJob) RunBackup() (string, error) {
	records := j.source.Snapshot()
	if len(records) == 0 {
		j.logger.Info("No problems to back up")
		return "", nil
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(j.config.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	filename := fmt.Sprintf("problems_%s.json", j.now().Format("20060102_150405"))
	path := filepath.Join(j.config.Dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	j.logger.Info("Problem snapshot backed up", zap.String("path", path), zap.Int("count", len(records)))
	return path, nil
}
