package orchestration

import (
	"sync"

	"github.com/koscakluka/hotline-core/core/session"
)

// snapshotPublisher fans sessions out to subscribers. Each subscriber has a
// one slot buffer that always holds the newest undelivered session, so
// publishing never blocks.
type snapshotPublisher struct {
	mu          sync.Mutex
	subscribers map[int]chan session.CallSession
	nextID      int
	closed      bool
}

func newSnapshotPublisher() *snapshotPublisher {
	return &snapshotPublisher{subscribers: map[int]chan session.CallSession{}}
}

func (p *snapshotPublisher) subscribe(current session.CallSession) (<-chan session.CallSession, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan session.CallSession, 1)
	ch <- current.Clone()
	if p.closed {
		close(ch)
		return ch, func() {}
	}

	id := p.nextID
	p.nextID++
	p.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if sub, ok := p.subscribers[id]; ok {
				delete(p.subscribers, id)
				close(sub)
			}
		})
	}
}

func (p *snapshotPublisher) publish(state session.CallSession) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	for _, ch := range p.subscribers {
		snapshot := state.Clone()
		select {
		case ch <- snapshot:
			continue
		default:
		}

		// Replace the stale session nobody read yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (p *snapshotPublisher) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	for id, ch := range p.subscribers {
		delete(p.subscribers, id)
		close(ch)
	}
}
