package syncrunner

import (
	"context"
	"log"
	"time"

	"greenmile/internal/ports"
)

// Processor performs the corrective work for a claimed sync job.
type Processor interface {
	Process(ctx context.Context, merchantID string) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, merchantID string) error

func (f ProcessorFunc) Process(ctx context.Context, merchantID string) error {
	return f(ctx, merchantID)
}

// Run starts worker goroutines that claim sync jobs and process them. The
// dispatcher polls for queued jobs; claiming uses SKIP LOCKED so multiple
// instances can share one queue.
func Run(ctx context.Context, repo ports.JobRepository, processor Processor, concurrency int, pollInterval time.Duration) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.SyncJob, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(jobsCh)
				return
			case <-ticker.C:
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						log.Printf("sync: job claim error: %v", err)
						break
					}
					if !found {
						break
					}
					jobsCh <- job
				}
			}
		}
	}()

	// workers
	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for job := range jobsCh {
				if err := processor.Process(ctx, job.MerchantID); err != nil {
					_ = repo.MarkFailed(ctx, job.ID, err.Error())
					log.Printf("sync: worker %d: job %s failed: %v", idx, job.ID, err)
					continue
				}
				if err := repo.MarkCompleted(ctx, job.ID); err != nil {
					log.Printf("sync: worker %d: complete err: %v", idx, err)
				}
			}
		}(i)
	}
}
