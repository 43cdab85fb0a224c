package reconciler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/voteboard-dev/voteboard/db"
	"github.com/voteboard-dev/voteboard/internal/models"
	"github.com/voteboard-dev/voteboard/internal/store"
)

// Reconciler periodically recomputes every feature's cached vote count from
// its vote rows. The toggle path keeps counts consistent on its own; this
// sweep only repairs drift caused by out-of-band data changes such as bulk
// imports, which is why it is off unless an interval is configured.
type Reconciler struct {
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func New(interval time.Duration) *Reconciler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Reconciler{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the periodic sweep.
func (r *Reconciler) Start() {
	log.Printf("Starting reconciler with interval %v", r.interval)

	r.wg.Add(1)
	go r.run()
}

// Stop cancels the sweep and waits for an in-flight pass to finish.
func (r *Reconciler) Stop() {
	r.cancel()
	r.wg.Wait()
	log.Println("Reconciler stopped")
}

func (r *Reconciler) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Reconciler) sweep() {
	var featureIDs []uint

	if err := db.DB.WithContext(r.ctx).Model(&models.Feature{}).Pluck("id", &featureIDs).Error; err != nil {
		log.Printf("Reconcile sweep failed to list features: %v", err)
		return
	}

	repaired := 0

	for _, id := range featureIDs {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		if _, err := store.ReconcileVoteCount(r.ctx, id); err != nil {
			log.Printf("Reconcile failed for feature %d: %v", id, err)
			continue
		}
		repaired++
	}

	log.Printf("Reconcile sweep finished: %d features", repaired)
}
