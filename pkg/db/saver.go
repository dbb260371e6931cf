package db

import (
	"context"
	"sync"
	"time"

	"cardtable/pkg/account"

	"github.com/sirupsen/logrus"
)

const saveTimeout = time.Second * 10

// Saver writes controller snapshots to the store from its own goroutine so a
// resolved round never blocks on disk. Save failures are logged and
// swallowed; the next request tries again with a fresh snapshot.
type Saver struct {
	store      *Store
	controller *account.Controller
	logger     logrus.FieldLogger
	requests   chan struct{}
	done       chan struct{}
	mu         sync.Mutex
	closed     bool
}

// NewSaver starts the save worker
func NewSaver(logger logrus.FieldLogger, store *Store, controller *account.Controller) *Saver {
	s := &Saver{
		store:      store,
		controller: controller,
		logger:     logger.WithField("worker", "saver"),
		requests:   make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	go s.run()
	return s
}

// RequestSave asks the worker to persist the current state. It never blocks;
// a request arriving while one is already pending coalesces into it, and a
// request after Close is dropped.
func (s *Saver) RequestSave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.requests <- struct{}{}:
	default:
	}
}

// Close flushes one final save and stops the worker. Calling it again is a
// no-op.
func (s *Saver) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}

	s.closed = true
	close(s.requests)
	s.mu.Unlock()

	<-s.done
}

func (s *Saver) run() {
	defer close(s.done)

	for range s.requests {
		s.save()
	}

	// final flush so state changed after the last request still lands
	s.save()
}

func (s *Saver) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.store.Save(ctx, s.controller.Snapshot()); err != nil {
		s.logger.WithError(err).Error("could not save player state")
	}
}
