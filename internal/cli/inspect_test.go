package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/genoviz/pkg/chart/genome"
	"github.com/matzehuels/genoviz/pkg/pipeline"
)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestInspectModel(t *testing.T, opts pipeline.Options) inspectModel {
	t.Helper()
	m, err := newInspectModel(context.Background(), opts)
	if err != nil {
		t.Fatalf("newInspectModel() error: %v", err)
	}
	return m
}

func press(m inspectModel, keys ...tea.KeyMsg) inspectModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(inspectModel)
	}
	return m
}

func TestInspectModelNavigation(t *testing.T) {
	m := newTestInspectModel(t, pipeline.Options{Kind: "pie", Data: []byte(`{"Klf1": 3, "Gata1": 1}`)})

	if n := len(m.tbl.Rows()); n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}
	m = press(m, keyUp)
	if c := m.tbl.Cursor(); c != 0 {
		t.Errorf("cursor moved above first row: %d", c)
	}
	m = press(m, keyDown, keyDown)
	if c := m.tbl.Cursor(); c != 1 {
		t.Errorf("cursor = %d, want 1 (clamped to last row)", c)
	}

	view := m.View()
	for _, want := range []string{"Inspect pie", "Klf1", "Gata1", "[2/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestInspectModelQuit(t *testing.T) {
	m := newTestInspectModel(t, pipeline.Options{Kind: "pie", Data: []byte(`{"A": 1}`)})
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestInspectModelPieHover(t *testing.T) {
	m := newTestInspectModel(t, pipeline.Options{Kind: "pie", Data: []byte(`{"Klf1": 3, "Gata1": 1}`)})

	m = press(m, keyEnter)
	if m.err != nil {
		t.Fatalf("hover error: %v", m.err)
	}
	if !strings.Contains(m.status, "Klf1: 3 (75.00%)") {
		t.Errorf("status = %q, want tooltip text", m.status)
	}
	if len(m.patches) == 0 {
		t.Error("hover should produce patches")
	}

	m = press(m, keyRune('x'))
	if m.status != "unhover" {
		t.Errorf("status = %q, want unhover", m.status)
	}
}

func TestInspectModelCallbacks(t *testing.T) {
	tests := []struct {
		name string
		opts pipeline.Options
		keys []tea.KeyMsg
		want []string
	}{
		{
			name: "scatter click",
			opts: pipeline.Options{Kind: "tsne", Data: []byte("-5\t2\tcluster-1\n3\t-1\tcluster-2\n")},
			keys: []tea.KeyMsg{keyDown, keyEnter},
			want: []string{"3", "-1", "cluster-2"},
		},
		{
			name: "violin leave",
			opts: pipeline.Options{Kind: "violin", Data: []byte("c1\tx\tGata1\t2.5\nc2\tx\tGata1\t3\nc3\tx\tKlf1\t1\n")},
			keys: []tea.KeyMsg{keyRune('x')},
			want: []string{"Gata1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestInspectModel(t, tt.opts), tt.keys...)
			if m.err != nil {
				t.Fatalf("action error: %v", m.err)
			}
			got := *m.record
			if len(got) != len(tt.want) {
				t.Fatalf("record = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("record[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if !strings.Contains(m.View(), "record: ") {
				t.Error("View() should show the record")
			}
		})
	}
}

func TestInspectModelGenomeZoom(t *testing.T) {
	m := newTestInspectModel(t, pipeline.Options{
		Kind:  "genome",
		Data:  []byte("start\tend\tstrand\tfeature\tname\n1000\t1500\t+\texon\tex1\n2000\t3000\t-\tgene\tg1\n"),
		Chrom: "2L",
		Min:   0,
		Max:   4000,
	})
	track := m.chart.(*genome.Track)

	m = press(m, keyRune('z'))
	if m.err != nil {
		t.Fatalf("zoom error: %v", m.err)
	}
	if lo, hi := track.Domain(); lo != 950 || hi != 1550 {
		t.Errorf("Domain() = [%v, %v], want [950, 1550]", lo, hi)
	}
	if !strings.Contains(m.View(), "2L:950-1550") {
		t.Error("View() should show the visible window")
	}

	m = press(m, keyRune('r'))
	if lo, hi := track.Domain(); lo != 0 || hi != 4000 {
		t.Errorf("Domain() after reset = [%v, %v], want [0, 4000]", lo, hi)
	}
}

func TestInspectModelZoomOtherKinds(t *testing.T) {
	m := newTestInspectModel(t, pipeline.Options{Kind: "pie", Data: []byte(`{"A": 1}`)})
	m = press(m, keyRune('z'))
	if m.err != nil || len(m.patches) != 0 {
		t.Errorf("zoom on pie should be a no-op, got patches=%d err=%v", len(m.patches), m.err)
	}
	if !strings.Contains(m.status, "genome") {
		t.Errorf("status = %q", m.status)
	}
}
