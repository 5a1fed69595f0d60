package bot

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/infra/logger"
)

func TestNoticesFinishBeforeShutdown(t *testing.T) {
	b := &Bot{log: logger.Discard()}
	var delivered atomic.Int32
	b.notify = func(ctx context.Context, _ inquiries.Inquiry, _ *dialog.ItemRef) {
		time.Sleep(20 * time.Millisecond)
		if ctx.Err() == nil {
			delivered.Add(1)
		}
	}

	// контекст апдейта уже отменён, как при SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	b.InquiryCommitted(ctx, inquiries.Inquiry{ID: 1}, nil)
	b.InquiryCommitted(ctx, inquiries.Inquiry{ID: 2}, nil)
	cancel()

	b.waitNotices()
	if got := delivered.Load(); got != 2 {
		t.Fatalf("delivered = %d, want 2", got)
	}
}
