package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/saturnino-fabrica-de-software/facematch/internal/domain"
	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
	"github.com/saturnino-fabrica-de-software/facematch/internal/similarity"
)

// TempStorage is the scratch space uploads live in during one comparison
type TempStorage interface {
	Save(name string, r io.Reader) (string, error)
	Remove(paths ...string) error
}

// Upload is one image as received from the client
type Upload struct {
	Filename string
	Content  io.Reader
}

type CompareRequest struct {
	EmployeeID string
	Img1       Upload
	Img2       Upload
}

type CompareService struct {
	store    TempStorage
	verifier provider.FaceVerifier
	logger   *slog.Logger

	sem               *semaphore.Weighted
	timeout           time.Duration
	keepFailedUploads bool

	warmMu sync.Mutex
	ready  atomic.Bool
}

// Option configures optional CompareService behaviour
type Option func(*CompareService)

// WithConcurrencyLimit caps how many comparisons run at once. n <= 0 means no limit.
func WithConcurrencyLimit(n int64) Option {
	return func(s *CompareService) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

// WithTimeout bounds each provider call. d <= 0 means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *CompareService) {
		s.timeout = d
	}
}

// WithKeepFailedUploads leaves temporary files on disk when a comparison
// fails, so they can be inspected.
func WithKeepFailedUploads(keep bool) Option {
	return func(s *CompareService) {
		s.keepFailedUploads = keep
	}
}

func NewCompareService(store TempStorage, verifier provider.FaceVerifier, logger *slog.Logger, opts ...Option) *CompareService {
	s := &CompareService{
		store:    store,
		verifier: verifier,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Warmup builds the provider model once. After a failure the next call
// tries again.
func (s *CompareService) Warmup(ctx context.Context) error {
	s.warmMu.Lock()
	defer s.warmMu.Unlock()
	return s.warmupLocked(ctx)
}

func (s *CompareService) warmupLocked(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}

	start := time.Now()
	if err := s.verifier.BuildModel(ctx); err != nil {
		return fmt.Errorf("warm up %s: %w", s.verifier.Name(), err)
	}
	s.ready.Store(true)

	s.logger.Info("face model ready",
		slog.String("provider", s.verifier.Name()),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// Ready reports whether the model warm-up has completed
func (s *CompareService) Ready() bool {
	return s.ready.Load()
}

func (s *CompareService) ProviderName() string {
	return s.verifier.Name()
}

// ensureWarm retries a failed startup warm-up without blocking behind
// another request that is already doing it.
func (s *CompareService) ensureWarm(ctx context.Context) {
	if s.ready.Load() || !s.warmMu.TryLock() {
		return
	}
	defer s.warmMu.Unlock()

	if err := s.warmupLocked(ctx); err != nil {
		s.logger.Warn("lazy model warm-up failed", slog.Any("error", err))
	}
}

// Compare saves both uploads, runs the verifier over them, scores the result
// and removes the files again.
func (s *CompareService) Compare(ctx context.Context, req CompareRequest) (*domain.Comparison, error) {
	employeeID := req.EmployeeID
	if employeeID == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("employee_id is required"))
	}
	if req.Img1.Content == nil || req.Img2.Content == nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("img1 and img2 are required"))
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, classify(err)
		}
		defer s.sem.Release(1)
	}

	s.ensureWarm(ctx)

	img1Path, err := s.store.Save(req.Img1.Filename, req.Img1.Content)
	if err != nil {
		return nil, domain.ErrStorage.WithError(fmt.Errorf("save img1: %w", err))
	}

	img2Path, err := s.store.Save(req.Img2.Filename, req.Img2.Content)
	if err != nil {
		s.discard(employeeID, img1Path)
		return nil, domain.ErrStorage.WithError(fmt.Errorf("save img2: %w", err))
	}

	result, err := s.verify(ctx, img1Path, img2Path)
	if err != nil {
		s.discard(employeeID, img1Path, img2Path)
		return nil, classify(err)
	}

	percent := similarity.Percent(result.Distance, result.Threshold)

	if err := s.store.Remove(img1Path, img2Path); err != nil {
		return nil, domain.ErrStorage.WithError(fmt.Errorf("cleanup: %w", err))
	}

	s.logger.Debug("faces compared",
		slog.String("employee_id", employeeID),
		slog.Bool("verified", result.Verified),
		slog.Float64("distance", result.Distance),
		slog.Float64("threshold", result.Threshold),
		slog.Float64("similarity", percent),
	)

	return &domain.Comparison{
		EmployeeID: employeeID,
		Result:     *result,
		Similarity: percent,
	}, nil
}

func (s *CompareService) verify(ctx context.Context, img1Path, img2Path string) (*domain.ComparisonResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.verifier.Verify(ctx, img1Path, img2Path)
	if err != nil {
		return nil, fmt.Errorf("%s verify: %w", s.verifier.Name(), err)
	}
	if result == nil {
		return nil, fmt.Errorf("%s verify: %w", s.verifier.Name(), provider.ErrInvalidResponse)
	}
	return result, nil
}

// discard applies the failure path cleanup policy
func (s *CompareService) discard(employeeID string, paths ...string) {
	if s.keepFailedUploads {
		s.logger.Warn("keeping uploads of failed comparison",
			slog.String("employee_id", employeeID),
			slog.Any("paths", paths),
		)
		return
	}

	if err := s.store.Remove(paths...); err != nil {
		s.logger.Error("failed to remove uploads after error",
			slog.String("employee_id", employeeID),
			slog.Any("error", err),
		)
	}
}

// classify maps a failure onto the domain error kinds
func classify(err error) error {
	var appErr *domain.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, provider.ErrNoFaceDetected):
		return domain.ErrNoFaceDetected.WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ErrTimeout.WithError(err)
	case errors.Is(err, context.Canceled):
		return domain.ErrInternal.WithError(err)
	case errors.Is(err, provider.ErrProviderUnavailable), errors.Is(err, provider.ErrInvalidResponse):
		return domain.ErrProvider.WithError(err)
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return domain.ErrStorage.WithError(err)
	}

	return domain.ErrProvider.WithError(err)
}
