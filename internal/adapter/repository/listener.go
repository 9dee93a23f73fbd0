package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/logger"
)

// listenerHandle cancels a snapshot pump and waits for it to finish. Stop
// blocking until the goroutine exits guarantees no callback fires after Stop
// returns, which callers rely on when replacing one listener with another.
type listenerHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (h *listenerHandle) Stop() {
	h.cancel()
	<-h.done
}

// listenQuery pumps query snapshots into fn until the context is cancelled or
// the stream fails. Errors other than cancellation terminate the listener; the
// backend does not retry on our behalf and neither do we.
func listenQuery(ctx context.Context, query firestore.Query, fn func(*firestore.QuerySnapshot)) repository.Subscription {
	ctx, cancel := context.WithCancel(ctx)
	handle := &listenerHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(handle.done)

		iter := query.Snapshots(ctx)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Query listener terminated: %v", err)
				}
				return
			}
			fn(snap)
		}
	}()

	return handle
}

// listenDocument pumps document snapshots into fn, including snapshots where
// the document does not exist.
func listenDocument(ctx context.Context, ref *firestore.DocumentRef, fn func(*firestore.DocumentSnapshot)) repository.Subscription {
	ctx, cancel := context.WithCancel(ctx)
	handle := &listenerHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(handle.done)

		iter := ref.Snapshots(ctx)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Document listener terminated: %v", err)
				}
				return
			}
			fn(snap)
		}
	}()

	return handle
}
