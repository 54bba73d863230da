package buildinfo

import (
	"strings"
	"testing"
)

func TestVersionStrings(t *testing.T) {
	if Version != "1.0.0" {
		t.Errorf("Version = %q, want 1.0.0", Version)
	}
	if !strings.Contains(String(), "version: "+Version) {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
	if UserAgent() != "genoviz/1.0.0" {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
