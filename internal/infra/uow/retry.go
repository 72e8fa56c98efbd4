package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/pkg/errs"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

func newRetryPolicy(cfg config.TxConfig) retryPolicy {
	p := retryPolicy{maxRetries: cfg.MaxRetries, base: cfg.BaseBackoff}
	if p.maxRetries < 0 {
		p.maxRetries = 0
	}
	if p.base <= 0 {
		p.base = 50 * time.Millisecond
	}
	return p
}

// run calls attempt until it succeeds, fails with a non-transient error, or the
// retry budget is spent.
func (p retryPolicy) run(ctx context.Context, backend string, attempt func() error) error {
	for i := 0; i <= p.maxRetries; i++ {
		err := attempt()
		if err == nil {
			return nil
		}

		if !infra.IsTransient(err) {
			return err
		}
		if i == p.maxRetries {
			slog.Error("transaction failed after max retries",
				"backend", backend,
				"attempts", i+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := calculateBackoff(i, p.base)

		slog.Warn("retrying transaction due to retryable error",
			"backend", backend,
			"attempt", i+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// mask the sign bit
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}
