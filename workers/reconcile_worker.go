// workers/reconcile_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"traffic-manager-system/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var reconcileRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "traffic_financial_reconcile_runs_total",
		Help: "Background financial reconciliations, by outcome.",
	},
	[]string{"outcome"},
)

// ReconcileWorker periodically recomputes every user's financial aggregates
// from their tests. Write paths already reconcile inline; the sweep repairs
// drift from out-of-band writes and crashed transactions.
type ReconcileWorker struct {
	DB       *gorm.DB
	Interval time.Duration
}

func NewReconcileWorker(db *gorm.DB, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{DB: db, Interval: interval}
}

func (w *ReconcileWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Financial Reconcile Worker…")
	go w.run(ctx)
}

func (w *ReconcileWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Financial Reconcile Worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *ReconcileWorker) sweep() {
	var userIDs []string
	if err := w.DB.Raw("SELECT DISTINCT user_id FROM tests").Scan(&userIDs).Error; err != nil {
		log.Printf("[RECONCILE] ❌ Failed to list users: %v", err)
		reconcileRuns.WithLabelValues("error").Inc()
		return
	}
	if len(userIDs) == 0 {
		return
	}

	var okCount, errCount int
	for _, userID := range userIDs {
		err := w.DB.Transaction(func(tx *gorm.DB) error {
			_, err := services.ReconcileFinancial(tx, userID)
			return err
		})
		if err != nil {
			errCount++
			log.Printf("[RECONCILE] ⚠️ Failed for user %s: %v", userID, err)
		} else {
			okCount++
		}
	}

	reconcileRuns.WithLabelValues("ok").Add(float64(okCount))
	if errCount > 0 {
		reconcileRuns.WithLabelValues("error").Add(float64(errCount))
	}
	log.Printf("[RECONCILE] ✅ Swept %d user(s) (%d ok, %d errors)", len(userIDs), okCount, errCount)
}
