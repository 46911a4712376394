// Package outbox queues optimistic connection mutations and delivers them
// to the backend in the background, preserving FIFO order per peer while
// letting mutations for different peers proceed in parallel.
//
// Contract: callers must not invoke Submit concurrently for the same peer;
// per-peer ordering relies on that external serialisation.
package outbox

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	clerrors "github.com/campuslink/campuslink-go/internal/errors"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// Outbox runs jobs on worker goroutines partitioned by a stable hash of the
// peer uid. Retryable failures are retried with exponential backoff;
// permanent failures are handed to the configured ErrorHandler and dropped.
type Outbox struct {
	cfg    Config
	queues []chan queuedJob // len == cfg.Shards

	done   chan struct{} // closed in Stop
	closed uint32        // 0 running, 1 closed

	wg sync.WaitGroup
}

// New constructs the outbox and starts its shard workers.
func New(cfg Config) *Outbox {
	if cfg.Shards <= 0 {
		cfg.Shards = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = 100 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 10 * time.Second
	}

	o := &Outbox{
		cfg:    cfg,
		queues: make([]chan queuedJob, cfg.Shards),
		done:   make(chan struct{}),
	}
	for i := 0; i < cfg.Shards; i++ {
		ch := make(chan queuedJob, cfg.QueueSize)
		o.queues[i] = ch
		o.wg.Add(1)
		go o.runWorker(i, ch)
	}
	return o
}

// Submit enqueues job on the shard derived from peerUID.
//
//   - nil on success.
//   - ErrClosed if the outbox is stopped.
//   - *QueueFullError (matches ErrQueueFull) if the shard stays full for
//     EnqueueTimeout.
//   - ctx.Err() if the caller's context is cancelled first.
func (o *Outbox) Submit(ctx context.Context, peerUID string, job Job) error {
	if atomic.LoadUint32(&o.closed) == 1 {
		return ErrClosed
	}
	// Stop may have closed o.done before we observed the flag.
	select {
	case <-o.done:
		return ErrClosed
	default:
	}

	qj := queuedJob{ctx: ctx, job: job}
	shard := o.shardFor(peerUID)
	ch := o.queues[shard]

	timer := time.NewTimer(o.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- qj:
		enqueuedTotal.WithLabelValues(labelFor(shard)).Inc()
		return nil
	case <-o.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		queueFullTotal.WithLabelValues(labelFor(shard)).Inc()
		return &QueueFullError{Shard: shard, Length: len(ch), Capacity: cap(ch)}
	}
}

// Barrier enqueues a no-op job for peerUID and waits until it runs, which
// guarantees every previously submitted job for that peer has completed.
func (o *Outbox) Barrier(ctx context.Context, peerUID string) error {
	done := make(chan struct{})
	j := JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	if err := o.Submit(ctx, peerUID, j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Stop drains every shard queue and waits for the workers to exit.
// Idempotent and safe for concurrent use.
func (o *Outbox) Stop() {
	if !atomic.CompareAndSwapUint32(&o.closed, 0, 1) {
		return
	}
	log.Debug().Int("shards", o.cfg.Shards).Msg("outbox: stopping, draining shards")
	close(o.done)
	o.wg.Wait()
	log.Debug().Msg("outbox: stopped, all queues drained")
}

// Close lets Outbox satisfy io.Closer.
func (o *Outbox) Close() error {
	o.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (o *Outbox) runWorker(idx int, ch <-chan queuedJob) {
	defer o.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("shard", idx).Interface("panic", r).Msg("outbox: worker panic")
		}
	}()

	label := labelFor(idx)

	for {
		select {
		case qj := <-ch:
			if qj.job == nil {
				continue
			}
			select {
			case <-qj.ctx.Done():
				// Cancelled before dispatch; skip so the shard keeps moving.
				o.safeHandleError(qj.ctx.Err())
			default:
				o.dispatch(label, qj)
			}
			queueDepth.WithLabelValues(label).Set(float64(len(ch)))

		case <-o.done:
			// Drain what is left, preserving FIFO, then exit.
			for {
				select {
				case qj := <-ch:
					if qj.job != nil {
						_ = qj.job.Run(qj.ctx)
					}
				default:
					queueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		}
	}
}

// dispatch runs one job, retrying retryable errors up to MaxAttempts.
func (o *Outbox) dispatch(label string, qj queuedJob) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = o.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = o.cfg.MaxInterval
	exp.Reset()

	attempts := 0
	for {
		start := time.Now()
		err := qj.job.Run(qj.ctx)
		dispatchDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

		if err == nil {
			return
		}
		if clerrors.IsPermanent(err) {
			o.safeHandleError(err)
			return
		}
		if attempts >= o.cfg.MaxAttempts-1 {
			o.safeHandleError(err)
			return
		}
		attempts++
		select {
		case <-time.After(exp.NextBackOff()):
		case <-o.done:
			return
		case <-qj.ctx.Done():
			o.safeHandleError(qj.ctx.Err())
			return
		}
	}
}

func (o *Outbox) safeHandleError(err error) {
	if err == nil || o.cfg.ErrorHandler == nil {
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("outbox: error handler panic")
			}
		}()
		o.cfg.ErrorHandler(err)
	}()
}

func (o *Outbox) shardFor(peerUID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(peerUID))
	return int(h.Sum32()) % o.cfg.Shards
}
