package result

import "context"

type Repo interface {
	SaveSnapshot(ctx context.Context, s *Snapshot) error
}

type Events interface {
	PublishResult(ctx context.Context, r *Result) error
}
