package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"
)

// Snapshotter writes a dated CSV export of all transactions to a local
// directory on a cron schedule. Snapshots for the same day overwrite each
// other, so reruns are harmless.
type Snapshotter struct {
	store ledger.TransactionStore
	dir   string
	now   func() time.Time
}

func NewSnapshotter(store ledger.TransactionStore, dir string) *Snapshotter {
	return &Snapshotter{
		store: store,
		dir:   dir,
		now:   time.Now,
	}
}

// Schedule registers the snapshot job on the given cron runner. The caller
// owns starting and stopping the runner.
func (s *Snapshotter) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Snapshot(ctx); err != nil {
			slog.Error("Scheduled snapshot failed", "error", err)
		}
	})
}

// Snapshot writes today's export file. An empty ledger writes nothing.
func (s *Snapshotter) Snapshot(ctx context.Context) error {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	if len(transactions) == 0 {
		slog.InfoContext(ctx, "No transactions, skipping snapshot")
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	path := filepath.Join(s.dir, core.ExportFilename(s.now()))
	if err := os.WriteFile(path, []byte(core.ExportCSV(transactions)), 0o644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot written", "path", path, "transactions", len(transactions))
	return nil
}
