package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Maharshi2203/Sattys-main/importer"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ImportQueueKey     = "bulk_import:queue"
	importJobKeyPrefix = "bulk_import:job:"
	ImportJobTTL       = 24 * time.Hour

	defaultStorageDir = "./data/bulk_imports"
	popTimeout        = 5 * time.Second
)

// ImportJobTimeout bounds one queued import. A job already taken off the
// queue runs to completion even when the worker is asked to stop.
const ImportJobTimeout = 5 * time.Minute

// ErrJobNotFound is returned for unknown or expired job ids.
var ErrJobNotFound = errors.New("import job not found")

// ImportJobStatus tracks a queued import.
type ImportJobStatus string

const (
	JobPending    ImportJobStatus = "pending"
	JobProcessing ImportJobStatus = "processing"
	JobDone       ImportJobStatus = "done"
	JobFailed     ImportJobStatus = "failed"
)

// ImportJob is the status record kept in Redis for an async import.
type ImportJob struct {
	ID        string           `json:"job_id"`
	Status    ImportJobStatus  `json:"status"`
	Filename  string           `json:"filename"`
	FilePath  string           `json:"file_path,omitempty"`
	Result    *importer.Result `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ImportQueue persists uploads to disk and queues them on a Redis list.
type ImportQueue struct {
	redis      *redis.Client
	storageDir string
	logger     *zap.Logger
}

// NewImportQueue creates the storage directory if needed.
func NewImportQueue(rdb *redis.Client, storageDir string, logger *zap.Logger) (*ImportQueue, error) {
	if storageDir == "" {
		storageDir = defaultStorageDir
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bulk storage dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportQueue{redis: rdb, storageDir: storageDir, logger: logger}, nil
}

// Enqueue stores the file and queues a pending job. Files with an
// unsupported extension are rejected up front with a *importer.BatchError.
func (q *ImportQueue) Enqueue(ctx context.Context, filename string, data []byte) (*ImportJob, error) {
	if _, err := importer.DetectFormat(filename); err != nil {
		return nil, &importer.BatchError{Reason: "cannot import " + filepath.Base(filename), Err: err}
	}

	id := uuid.NewString()
	path := filepath.Join(q.storageDir, id+strings.ToLower(filepath.Ext(filename)))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist upload: %w", err)
	}

	now := time.Now().UTC()
	job := &ImportJob{
		ID:        id,
		Status:    JobPending,
		Filename:  filepath.Base(filename),
		FilePath:  path,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.save(ctx, job); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	if err := q.redis.RPush(ctx, ImportQueueKey, id).Err(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to enqueue import job: %w", err)
	}
	q.logger.Info("Import job queued", zap.String("job_id", id), zap.String("file", job.Filename), zap.Int("bytes", len(data)))
	return job, nil
}

// Status returns the current record of a job.
func (q *ImportQueue) Status(ctx context.Context, id string) (*ImportJob, error) {
	raw, err := q.redis.Get(ctx, importJobKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	var job ImportJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("corrupt import job %s: %w", id, err)
	}
	return &job, nil
}

func (q *ImportQueue) save(ctx context.Context, job *ImportJob) error {
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := q.redis.Set(ctx, importJobKeyPrefix+job.ID, b, ImportJobTTL).Err(); err != nil {
		return fmt.Errorf("failed to save import job: %w", err)
	}
	return nil
}

// ImportWorker drains the import queue one job at a time.
type ImportWorker struct {
	queue   *ImportQueue
	imports ImportService
	logger  *zap.Logger
}

func NewImportWorker(queue *ImportQueue, imports ImportService, logger *zap.Logger) *ImportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportWorker{queue: queue, imports: imports, logger: logger}
}

// Run processes jobs until ctx is cancelled.
func (w *ImportWorker) Run(ctx context.Context) {
	w.logger.Info("Bulk import worker started", zap.String("queue", ImportQueueKey), zap.String("dir", w.queue.storageDir))
	for {
		if ctx.Err() != nil {
			w.logger.Info("Bulk import worker stopping")
			return
		}
		if _, err := w.ProcessNext(ctx, popTimeout); err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error("Bulk import worker error", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
}

// ProcessNext waits up to timeout for a job and runs it. It reports whether
// a job was taken.
func (w *ImportWorker) ProcessNext(ctx context.Context, timeout time.Duration) (bool, error) {
	res, err := w.queue.redis.BLPop(ctx, timeout, ImportQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if len(res) < 2 {
		return false, nil
	}
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ImportJobTimeout)
	defer cancel()
	w.process(jobCtx, res[1])
	return true, nil
}

func (w *ImportWorker) process(ctx context.Context, id string) {
	log := w.logger.With(zap.String("job_id", id))

	job, err := w.queue.Status(ctx, id)
	if err != nil {
		log.Error("Failed to read import job", zap.Error(err))
		return
	}
	defer func() {
		if job.FilePath != "" {
			_ = os.Remove(job.FilePath)
		}
	}()

	job.Status = JobProcessing
	job.UpdatedAt = time.Now().UTC()
	if err := w.queue.save(ctx, job); err != nil {
		log.Warn("Failed to mark import job processing", zap.Error(err))
	}

	data, err := os.ReadFile(filepath.Clean(job.FilePath))
	if err != nil {
		w.finish(ctx, job, nil, "failed to read uploaded file: "+err.Error())
		return
	}

	result, svcErr := w.imports.Import(ctx, job.Filename, data)
	if svcErr != nil {
		w.finish(ctx, job, nil, svcErr.Message)
		return
	}
	w.finish(ctx, job, result, "")
	log.Info("Import job finished", zap.Int("success", result.Success), zap.Int("failed", result.Failed))
}

func (w *ImportWorker) finish(ctx context.Context, job *ImportJob, result *importer.Result, errMsg string) {
	job.UpdatedAt = time.Now().UTC()
	job.Result = result
	job.Error = errMsg
	job.Status = JobDone
	if errMsg != "" {
		job.Status = JobFailed
		w.logger.Error("Import job failed", zap.String("job_id", job.ID), zap.String("error", errMsg))
	}
	if err := w.queue.save(ctx, job); err != nil {
		w.logger.Error("Failed to store import job result", zap.String("job_id", job.ID), zap.Error(err))
	}
}
