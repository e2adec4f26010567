package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arclab/arclab-api/internal/api/metrics"
	"github.com/arclab/arclab-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// SentGuard abstracts the duplicate-send store (Redis). nil disables the check.
type SentGuard interface {
	AlreadySent(ctx context.Context, recipient, purpose, code string) (bool, error)
	Mark(ctx context.Context, recipient, purpose, code string) error
}

// Dispatcher delivers OTP mails asynchronously through a fixed set of workers
// sharded by recipient via consistent hashing, so a resend's mail can never
// overtake the original for the same address.
type Dispatcher struct {
	workers []chan ports.OTPMail
	mailer  ports.Mailer
	guard   SentGuard
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, guard SentGuard, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OTPMail, numWorkers),
		mailer:  mailer,
		guard:   guard,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OTPMail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a mail to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(mail ports.OTPMail) {
	i := d.shardIndex(mail.To)
	d.workers[i] <- mail
	metrics.MailsEnqueuedTotal.WithLabelValues(mail.Purpose).Inc()
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OTPMail) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case mail, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, mail)
			metrics.MailQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, mail ports.OTPMail) {
	if d.guard != nil {
		sent, err := d.guard.AlreadySent(ctx, mail.To, mail.Purpose, mail.Code)
		if err != nil {
			d.log.Warn().Err(err).Str("to", mail.To).Msg("sent-mail check failed, sending anyway")
		} else if sent {
			metrics.MailDedupTotal.WithLabelValues("hit").Inc()
			d.log.Debug().Str("to", mail.To).Str("purpose", mail.Purpose).Msg("duplicate mail skipped")
			return
		} else {
			metrics.MailDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	if err := d.mailer.Send(ctx, mail); err != nil {
		metrics.MailsSentTotal.WithLabelValues(mail.Purpose, "error").Inc()
		d.log.Error().Err(err).
			Str("to", mail.To).
			Str("purpose", mail.Purpose).
			Msg("mail delivery failed")
		return
	}
	metrics.MailsSentTotal.WithLabelValues(mail.Purpose, "ok").Inc()

	if d.guard != nil {
		if err := d.guard.Mark(ctx, mail.To, mail.Purpose, mail.Code); err != nil {
			d.log.Warn().Err(err).Str("to", mail.To).Msg("failed to set sent-mail key")
		}
	}
}
