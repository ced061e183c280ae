package ports

import "context"

// SyncJob is one queued corrective pass over a merchant's orders: fill in
// missing emission or shipping records left behind by partial ingestion
// failures.
type SyncJob struct {
	ID         string
	MerchantID string
}

// JobRepository supports claiming and updating corrective sync jobs.
type JobRepository interface {
	Enqueue(ctx context.Context, merchantID string) (jobID string, err error)
	ClaimNext(ctx context.Context) (job SyncJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
}
