package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matzehuels/genoviz/pkg/cache"
	"github.com/matzehuels/genoviz/pkg/observability"
	"github.com/matzehuels/genoviz/pkg/pipeline"
	"github.com/matzehuels/genoviz/pkg/session"
)

const (
	featuresTSV = "1000\t1500\t+\texon\tex1\n2000\t3000\t-\tgene\tg1\n"
	countsJSON  = `{"Klf1": 3, "Gata1": 1}`
	cellsTSV    = "-5\t2\tcluster-1\n3\t-1\tcluster-2\n"
	violinTSV   = "c1\tx\tGata1\t2.5\nc2\tx\tGata1\t3\nc3\tx\tKlf1\t1\n"
)

func newTestServer(t *testing.T) (*Server, *session.MemoryStore) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	store := session.NewMemoryStore()
	srv := New(pipeline.NewRunner(fc, nil, logger), store,
		WithLogger(logger), WithCounters(&observability.Counters{}))
	return srv, store
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, h http.Handler, req createSessionRequest) sessionResponse {
	t.Helper()
	body, _ := json.Marshal(req)
	rec := do(t, h, http.MethodPost, "/v1/sessions", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d: %s", rec.Code, rec.Body)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Version == "" {
		t.Errorf("health = %+v", resp)
	}
	if !strings.HasPrefix(rec.Header().Get("Server"), "genoviz/") {
		t.Errorf("Server header = %q", rec.Header().Get("Server"))
	}
}

func TestRender(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/v1/render/pie", countsJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Genoviz-Cache") != "miss" {
		t.Error("first render should miss the cache")
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("body should be an svg document")
	}

	rec = do(t, h, http.MethodPost, "/v1/render/pie", countsJSON)
	if rec.Header().Get("X-Genoviz-Cache") != "hit" {
		t.Error("second render should hit the cache")
	}

	rec = do(t, h, http.MethodPost, "/v1/render/genome?format=json&chrom=2L&min=0&max=4000", featuresTSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("genome json: status %d: %s", rec.Code, rec.Body)
	}
	var geo struct {
		Chrom string `json:"chrom"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &geo); err != nil || geo.Chrom != "2L" {
		t.Errorf("geometry = %+v, err %v", geo, err)
	}
}

func TestRenderErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"unknown kind", "/v1/render/tower", countsJSON, http.StatusBadRequest, "INVALID_KIND"},
		{"unknown format", "/v1/render/pie?format=gif", countsJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad counts", "/v1/render/pie", `{"a": -1}`, http.StatusBadRequest, "NEGATIVE_COUNT"},
		{"bad min", "/v1/render/genome?min=abc&max=10", featuresTSV, http.StatusBadRequest, "INVALID_INPUT"},
		{"inverted range", "/v1/render/genome?min=10&max=5", featuresTSV, http.StatusBadRequest, "INVALID_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv, store := newTestServer(t)
	h := srv.Handler()

	resp := createSession(t, h, createSessionRequest{Kind: "scatter", Data: cellsTSV})
	if resp.Kind != "tsne" {
		t.Errorf("kind = %q, want tsne", resp.Kind)
	}
	if store.Len() != 1 {
		t.Errorf("store holds %d sessions, want 1", store.Len())
	}

	rec := do(t, h, http.MethodGet, resp.URL, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("page: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/v1/sessions/"+resp.ID+"/events") {
		t.Error("page should connect to the events socket")
	}

	rec = do(t, h, http.MethodGet, resp.URL+"/svg", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Errorf("svg: status %d", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, resp.URL, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, resp.URL+"/svg", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("after delete: status %d, want 404", rec.Code)
	}
}

func TestSessionErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"bad body", http.MethodPost, "/v1/sessions", "{", http.StatusBadRequest},
		{"bad kind", http.MethodPost, "/v1/sessions", `{"kind":"tower","data":""}`, http.StatusBadRequest},
		{"bad data", http.MethodPost, "/v1/sessions", `{"kind":"pie","data":"{\"a\": -1}"}`, http.StatusBadRequest},
		{"invalid id", http.MethodGet, "/v1/sessions/not-a-uuid", "", http.StatusNotFound},
		{"unknown id", http.MethodGet, "/v1/sessions/6f1c1f1e-8c1a-4f9e-9a55-3b1d2f3c4d5e/svg", "", http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/v1/sessions/6f1c1f1e-8c1a-4f9e-9a55-3b1d2f3c4d5e", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}
}

func TestSessionRebuiltFromStore(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	resp := createSession(t, h, createSessionRequest{
		Kind: "genome", Data: featuresTSV, Chrom: "2L", Min: 0, Max: 4000,
		Domain: &[2]float64{1000, 2000},
	})

	srv.live.remove(resp.ID)
	lc, err := srv.load(context.Background(), resp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if lc.sess.Domain == nil || *lc.sess.Domain != [2]float64{1000, 2000} {
		t.Errorf("domain = %v, want [1000 2000]", lc.sess.Domain)
	}
}

func TestDispatch(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	build := func(kind, data string) *liveChart {
		t.Helper()
		sess := session.New(kind, "", data, time.Hour)
		sess.Chrom, sess.Min, sess.Max = "2L", 0, 4000
		lc, err := srv.build(ctx, sess)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Set(ctx, sess); err != nil {
			t.Fatal(err)
		}
		return lc
	}

	t.Run("pie hover shows tooltip", func(t *testing.T) {
		reply := srv.handleEvent(ctx, build("pie", countsJSON), Event{Type: EventHover, Index: 0})
		if reply.Error != "" {
			t.Fatal(reply.Error)
		}
		if reply.Tooltip == nil || reply.Tooltip.Opacity != 1 || reply.Tooltip.HTML == "" {
			t.Errorf("tooltip = %+v", reply.Tooltip)
		}
	})

	t.Run("genome brush persists domain", func(t *testing.T) {
		lc := build("genome", featuresTSV)
		reply := srv.handleEvent(ctx, lc, Event{Type: EventBrush, Selection: &[2]float64{0, 492.5}})
		if reply.Error != "" {
			t.Fatal(reply.Error)
		}
		if reply.Domain == nil || reply.Domain[0] != 0 || reply.Domain[1] != 2000 {
			t.Fatalf("domain = %v, want [0 2000]", reply.Domain)
		}
		stored, err := store.Get(ctx, lc.sess.ID)
		if err != nil {
			t.Fatal(err)
		}
		if stored.Domain == nil || stored.Domain[1] != 2000 {
			t.Errorf("stored domain = %v", stored.Domain)
		}
	})

	t.Run("genome empty brush arms guard", func(t *testing.T) {
		reply := srv.handleEvent(ctx, build("genome", featuresTSV), Event{Type: EventBrush})
		if reply.Error != "" || reply.Domain != nil || len(reply.Patches) != 0 {
			t.Errorf("reply = %+v", reply)
		}
	})

	t.Run("scatter click returns record", func(t *testing.T) {
		reply := srv.handleEvent(ctx, build("tsne", cellsTSV), Event{Type: EventClick, Index: 1})
		if reply.Error != "" {
			t.Fatal(reply.Error)
		}
		if len(reply.Record) != 3 || reply.Record[2] != "cluster-2" {
			t.Errorf("record = %v", reply.Record)
		}
	})

	t.Run("violin leave returns group", func(t *testing.T) {
		reply := srv.handleEvent(ctx, build("violin", violinTSV), Event{Type: EventLeave, Index: 1})
		if reply.Error != "" {
			t.Fatal(reply.Error)
		}
		if len(reply.Record) != 2 || reply.Record[0] != "Klf1" || reply.Record[1] != "1" {
			t.Errorf("record = %v", reply.Record)
		}
	})

	errTests := []struct {
		name string
		kind string
		data string
		ev   Event
	}{
		{"pie click", "pie", countsJSON, Event{Type: EventClick}},
		{"genome out of range", "genome", featuresTSV, Event{Type: EventHover, Index: 9}},
		{"scatter hover", "tsne", cellsTSV, Event{Type: EventHover}},
		{"violin negative", "violin", violinTSV, Event{Type: EventClick, Index: -1}},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			reply := srv.handleEvent(ctx, build(tt.kind, tt.data), tt.ev)
			if reply.Code != "INVALID_EVENT" {
				t.Errorf("code = %q, want INVALID_EVENT", reply.Code)
			}
		})
	}
}

func TestEventsWebsocket(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := createSession(t, srv.Handler(), createSessionRequest{Kind: "pie", Data: countsJSON})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + resp.URL + "/events"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	if err := wsjson.Write(ctx, conn, Event{Type: EventHover, Index: 1}); err != nil {
		t.Fatal(err)
	}
	var reply Reply
	if err := wsjson.Read(ctx, conn, &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Error != "" || len(reply.Patches) == 0 || reply.Tooltip == nil {
		t.Errorf("hover reply = %+v", reply)
	}

	if err := conn.Write(ctx, websocket.MessageText, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	reply = Reply{}
	if err := wsjson.Read(ctx, conn, &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Code != "INVALID_EVENT" {
		t.Errorf("invalid message reply = %+v", reply)
	}
}
