package keeper

import (
	"context"
	"errors"
)

var errClosed = errors.New("keeper is closed")

// task is one unit of work on the mutation queue. fn runs on the loop
// goroutine with the loop's lifetime context; done, when non-nil, is closed
// after fn returns so synchronous callers can wait.
type task struct {
	name string
	fn   func(ctx context.Context)
	done chan struct{}
}

func (k *Keeper) loop(ctx context.Context) {
	defer close(k.done)
	for {
		select {
		case t := <-k.tasks:
			k.run(ctx, t)
		case <-k.quit:
			// Drain whatever was queued before the close.
			for {
				select {
				case t := <-k.tasks:
					k.run(ctx, t)
				default:
					return
				}
			}
		}
	}
}

func (k *Keeper) run(ctx context.Context, t task) {
	t.fn(ctx)
	if t.done != nil {
		close(t.done)
	}
}

func (k *Keeper) submit(t task) bool {
	select {
	case <-k.quit:
		return false
	default:
	}
	select {
	case k.tasks <- t:
		return true
	case <-k.quit:
		return false
	}
}

// do queues fn and waits for it to finish. The task itself runs under the
// loop's context; the caller's ctx only bounds how long the caller waits.
// An abandoned task still runs, its outcome is only logged.
func (k *Keeper) do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	var err error
	t := task{
		name: name,
		done: make(chan struct{}),
	}
	t.fn = func(taskCtx context.Context) {
		err = fn(taskCtx)
	}

	if !k.submit(t) {
		return errClosed
	}

	select {
	case <-t.done:
		return err
	case <-ctx.Done():
		go func() {
			<-t.done
			k.logger.Debug(context.Background(), "abandoned task finished", "task", name)
		}()
		return ctx.Err()
	}
}

// post queues fn without waiting. Used by write-backs that must not block
// the read path they complete.
func (k *Keeper) post(name string, fn func(ctx context.Context)) {
	if !k.submit(task{name: name, fn: fn}) {
		k.logger.Debug(context.Background(), "task dropped, keeper closed", "task", name)
	}
}
