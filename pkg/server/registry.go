package server

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/pipeline"
	"github.com/matzehuels/genoviz/pkg/session"
)

// liveChart is a chart session in memory. Charts are not safe for
// concurrent mutation, so every access holds mu.
type liveChart struct {
	mu     sync.Mutex
	sess   *session.Session
	mount  *mount.Mount
	chart  chart.Chart
	record chart.Record
}

type registry struct {
	mu     sync.Mutex
	charts map[string]*liveChart
}

func newRegistry() *registry {
	return &registry{charts: make(map[string]*liveChart)}
}

func (r *registry) get(id string) (*liveChart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lc, ok := r.charts[id]
	return lc, ok
}

// put stores lc unless another chart for the same session won the race, in
// which case the existing one is returned.
func (r *registry) put(lc *liveChart) *liveChart {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.charts[lc.sess.ID]; ok {
		return cur
	}
	r.charts[lc.sess.ID] = lc
	return lc
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.charts, id)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.charts)
}

// prune drops charts whose session expired before now.
func (r *registry) prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, lc := range r.charts {
		lc.mu.Lock()
		expired := lc.sess.IsExpired(now)
		lc.mu.Unlock()
		if expired {
			delete(r.charts, id)
			n++
		}
	}
	return n
}

// build creates the live chart for sess, normalising its kind and input
// format.
func (s *Server) build(ctx context.Context, sess *session.Session) (*liveChart, error) {
	opts := pipeline.Options{
		Kind:        sess.Kind,
		InputFormat: sess.InputFormat,
		Data:        []byte(sess.Data),
		Chrom:       sess.Chrom,
		Min:         sess.Min,
		Max:         sess.Max,
		Domain:      sess.Domain,
		Styles:      s.styles,
		Logger:      s.logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	sess.Kind = opts.Kind
	sess.InputFormat = opts.InputFormat

	lc := &liveChart{sess: sess, mount: mount.New("genoviz")}
	record := func(r chart.Record) { lc.record = r }
	c, _, err := pipeline.Build(ctx, lc.mount, opts, pipeline.Callbacks{OnClick: record, OnLeave: record})
	if err != nil {
		return nil, err
	}
	lc.chart = c
	return lc, nil
}

// load returns the live chart of session id, rebuilding it from the store
// when it is not in memory.
func (s *Server) load(ctx context.Context, id string) (*liveChart, error) {
	if !session.ValidID(id) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	if lc, ok := s.live.get(id); ok {
		lc.mu.Lock()
		expired := lc.sess.IsExpired(s.now())
		lc.mu.Unlock()
		if !expired {
			return lc, nil
		}
		s.live.remove(id)
	}

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, session.ErrNotFound) || stderrors.Is(err, session.ErrExpired) {
			return nil, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %q", id)
		}
		return nil, err
	}
	lc, err := s.build(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.live.put(lc), nil
}
