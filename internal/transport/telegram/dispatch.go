// File: internal/transport/telegram/dispatch.go
package telegram

import (
	"context"
	"sync"
)

// chatDispatcher runs one worker per chat with pending updates. Different
// chats are handled concurrently; updates for one chat are handled one at a
// time in arrival order.
type chatDispatcher struct {
	ctx    context.Context
	handle Handler
	logger Logger

	mu     sync.Mutex
	queues map[int64][]Inbound
	wg     sync.WaitGroup
}

func newChatDispatcher(ctx context.Context, handle Handler, logger Logger) *chatDispatcher {
	return &chatDispatcher{
		ctx:    ctx,
		handle: handle,
		logger: logger,
		queues: make(map[int64][]Inbound),
	}
}

// dispatch queues in behind earlier updates from the same chat.
func (d *chatDispatcher) dispatch(in Inbound) {
	d.mu.Lock()
	queue, running := d.queues[in.ChatID]
	d.queues[in.ChatID] = append(queue, in)
	if !running {
		d.wg.Add(1)
	}
	d.mu.Unlock()

	if !running {
		go d.drain(in.ChatID)
	}
}

// drain handles a chat's queue until it is empty. A turn already started
// runs to completion after shutdown; queued turns are dropped.
func (d *chatDispatcher) drain(chatID int64) {
	defer d.wg.Done()
	turnCtx := context.WithoutCancel(d.ctx)

	for {
		d.mu.Lock()
		queue := d.queues[chatID]
		if len(queue) == 0 || d.ctx.Err() != nil {
			delete(d.queues, chatID)
			d.mu.Unlock()
			if len(queue) > 0 {
				d.logger.Warn("dropping queued updates on shutdown", "chat_id", chatID, "count", len(queue))
			}
			return
		}
		next := queue[0]
		d.queues[chatID] = queue[1:]
		d.mu.Unlock()

		if err := d.handle(turnCtx, next.ChatID, next.Text); err != nil {
			d.logger.Error("failed to handle update", "chat_id", next.ChatID, "error", err)
		}
	}
}

// wait blocks until every worker has returned.
func (d *chatDispatcher) wait() {
	d.wg.Wait()
}
