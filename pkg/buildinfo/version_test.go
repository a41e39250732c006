package buildinfo

import (
	"strings"
	"testing"
)

func TestRevisionPrefersCommit(t *testing.T) {
	old := Commit
	t.Cleanup(func() { Commit = old })

	Commit = "abc1234"
	if got := Revision(); got != "abc1234" {
		t.Errorf("Revision() = %q, want abc1234", got)
	}
}

func TestTemplate(t *testing.T) {
	old := Commit
	t.Cleanup(func() { Commit = old })

	Commit = "deadbee"
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(tmpl, "(deadbee)") {
		t.Errorf("Template() missing commit: %q", tmpl)
	}
}
