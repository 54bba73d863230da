package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/chart/genome"
	"github.com/matzehuels/genoviz/pkg/chart/pie"
	"github.com/matzehuels/genoviz/pkg/chart/scatter"
	"github.com/matzehuels/genoviz/pkg/chart/violin"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/observability"
)

const (
	writeWait  = 10 * time.Second
	maxMsgSize = 64 * 1024
)

// Event types sent by the browser.
const (
	EventHover   = "hover"
	EventUnhover = "unhover"
	EventClick   = "click"
	EventLeave   = "leave"
	EventBrush   = "brush"
)

// Event is one user interaction. Index addresses a feature, slice, point or
// violin; Selection is the brushed pixel interval, null for an empty
// release.
type Event struct {
	Type      string      `json:"type"`
	Index     int         `json:"index"`
	Selection *[2]float64 `json:"selection"`
}

// TooltipState is the pie tooltip after a hover event.
type TooltipState struct {
	ID      string  `json:"id"`
	HTML    string  `json:"html"`
	Opacity float64 `json:"opacity"`
}

// Reply answers one event.
type Reply struct {
	Patches []interact.Patch `json:"patches"`
	Tooltip *TooltipState    `json:"tooltip,omitempty"`
	// Domain is the genome x domain after a brush that changed it.
	Domain *[2]float64 `json:"domain,omitempty"`
	// Record is what a scatter or violin callback received.
	Record chart.Record `json:"record,omitempty"`
	Error  string       `json:"error,omitempty"`
	Code   string       `json:"code,omitempty"`
}

// dispatch applies ev to the chart. persist reports whether the session
// document changed.
func (lc *liveChart) dispatch(ev Event) (reply Reply, persist bool, err error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.record = nil

	switch c := lc.chart.(type) {
	case *genome.Track:
		switch ev.Type {
		case EventHover:
			reply.Patches, err = c.Hover(ev.Index)
		case EventUnhover:
			reply.Patches, err = c.Unhover(ev.Index)
		case EventBrush:
			var changed bool
			reply.Patches, changed = c.BrushEnd(ev.Selection)
			if changed {
				lo, hi := c.Domain()
				reply.Domain = &[2]float64{lo, hi}
				lc.sess.Domain = reply.Domain
				persist = true
			}
		default:
			err = unsupportedEvent(c.Kind(), ev.Type)
		}

	case *pie.Chart:
		switch ev.Type {
		case EventHover:
			reply.Patches, err = c.Hover(ev.Index)
		case EventUnhover:
			reply.Patches, err = c.Unhover(ev.Index)
		default:
			err = unsupportedEvent(c.Kind(), ev.Type)
		}
		if err == nil {
			tip := c.Tooltip()
			reply.Tooltip = &TooltipState{ID: tip.NodeID(), HTML: tip.Content(), Opacity: tip.Opacity()}
		}

	case *scatter.Chart:
		switch ev.Type {
		case EventClick:
			reply.Patches, err = c.Click(ev.Index)
		case EventLeave:
			reply.Patches, err = c.Leave(ev.Index)
		default:
			err = unsupportedEvent(c.Kind(), ev.Type)
		}

	case *violin.Chart:
		switch ev.Type {
		case EventClick:
			reply.Patches, err = c.Click(ev.Index)
		case EventLeave:
			reply.Patches, err = c.Leave(ev.Index)
		default:
			err = unsupportedEvent(c.Kind(), ev.Type)
		}

	default:
		err = errors.New(errors.ErrCodeInternal, "session holds no chart")
	}
	if err != nil {
		return Reply{}, false, err
	}
	if reply.Patches == nil {
		reply.Patches = []interact.Patch{}
	}
	reply.Record = lc.record
	return reply, persist, nil
}

func unsupportedEvent(kind chart.Kind, typ string) error {
	return errors.New(errors.ErrCodeInvalidEvent, "%s charts do not handle %q events", kind, typ)
}

// handleEvent runs one event end to end: dispatch, hooks and persistence.
func (s *Server) handleEvent(ctx context.Context, lc *liveChart, ev Event) Reply {
	start := time.Now()
	reply, persist, err := lc.dispatch(ev)
	observability.Interaction().OnEvent(ctx, lc.sess.Kind, ev.Type, len(reply.Patches), time.Since(start), err)
	if err != nil {
		return Reply{Patches: []interact.Patch{}, Error: errors.UserMessage(err), Code: string(errors.GetCode(err))}
	}

	lc.mu.Lock()
	lc.sess.Touch(s.now(), s.sessionTTL)
	snapshot := *lc.sess
	lc.mu.Unlock()
	if persist {
		if err := s.store.Set(ctx, &snapshot); err != nil {
			s.logger.Warn("persist session failed", "id", snapshot.ID, "err", err)
		}
	}
	return reply
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	lc, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		s.logger.Error("websocket accept", "err", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(maxMsgSize)

	ctx := r.Context()
	id := lc.sess.ID
	s.logger.Debug("events connected", "id", id)
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				s.logger.Debug("read error", "id", id, "err", err)
			}
			return
		}

		var reply Reply
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Warn("invalid message", "id", id, "err", err)
			reply = Reply{Patches: []interact.Patch{}, Error: "invalid message", Code: string(errors.ErrCodeInvalidEvent)}
		} else {
			reply = s.handleEvent(ctx, lc, ev)
		}

		writeCtx, cancel := context.WithTimeout(ctx, writeWait)
		err = wsjson.Write(writeCtx, conn, reply)
		cancel()
		if err != nil {
			s.logger.Debug("write error", "id", id, "err", err)
			return
		}
	}
}
