package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/api/metrics"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type notification struct {
	UserID  string
	Type    string
	Message string
}

// Notifier delivers notifications asynchronously through a fixed set of
// workers, sharded by recipient id so one user's notifications keep
// their order. Delivery is best-effort: failures are logged, never
// reported back to the operation that triggered them.
type Notifier struct {
	workers []chan notification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewNotifier creates a Notifier with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewNotifier(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Notifier {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	n := &Notifier{
		workers: make([]chan notification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range n.workers {
		n.workers[i] = make(chan notification, channelBuffer)
	}
	return n
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	for i, ch := range n.workers {
		go n.runWorker(ctx, i, ch)
	}
}

// Notify enqueues a notification for delivery. Blocks only when the
// recipient's worker channel is at capacity.
func (n *Notifier) Notify(userID, typeTag, message string) {
	idx := n.shardIndex(userID)
	n.workers[idx] <- notification{UserID: userID, Type: typeTag, Message: message}
	metrics.NotificationsEnqueuedTotal.WithLabelValues(typeTag).Inc()
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(n.workers[idx])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (n *Notifier) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(n.workers)
}

func (n *Notifier) runWorker(ctx context.Context, id int, ch <-chan notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if _, err := n.service.Create(ctx, msg.UserID, msg.Type, msg.Message); err != nil {
				n.log.Warn().Err(err).
					Str("user_id", msg.UserID).
					Str("type", msg.Type).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
