package sourcemap

import (
	"testing"
)

func TestNew(t *testing.T) {
	sm := New()
	if sm == nil {
		t.Fatal("New() returned nil")
	}
	if sm.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", sm.Len())
	}
}

func TestSourceMap_Resolve(t *testing.T) {
	sm := New()
	sm.Add(10, 12, "local/pre.sql", 1, "prepended code")
	sm.Add(16, 18, "upgrade/1312.schema.a.sql", 2, "merged upgrades")
	sm.Add(19, 19, "upgrade/1312.schema.a.sql", 6, "merged upgrades")
	sm.Add(25, 29, "upgrade/1313.data.reingest.sql", 1, "moved upgrades")

	tests := []struct {
		scriptLine      int
		expectedFile    string
		expectedLine    int
		expectedSection string
	}{
		{10, "local/pre.sql", 1, "prepended code"},
		{12, "local/pre.sql", 3, "prepended code"},
		{16, "upgrade/1312.schema.a.sql", 2, "merged upgrades"},
		{18, "upgrade/1312.schema.a.sql", 4, "merged upgrades"},
		{19, "upgrade/1312.schema.a.sql", 6, "merged upgrades"},
		{27, "upgrade/1313.data.reingest.sql", 3, "moved upgrades"},
	}

	for _, tt := range tests {
		file, line, section, found := sm.Resolve(tt.scriptLine)
		if !found {
			t.Errorf("Resolve(%d) returned found=false", tt.scriptLine)
			continue
		}
		if file != tt.expectedFile {
			t.Errorf("Resolve(%d) file = %q, expected %q", tt.scriptLine, file, tt.expectedFile)
		}
		if line != tt.expectedLine {
			t.Errorf("Resolve(%d) line = %d, expected %d", tt.scriptLine, line, tt.expectedLine)
		}
		if section != tt.expectedSection {
			t.Errorf("Resolve(%d) section = %q, expected %q", tt.scriptLine, section, tt.expectedSection)
		}
	}
}

func TestSourceMap_Resolve_NotFound(t *testing.T) {
	sm := New()
	sm.Add(5, 10, "file.sql", 1, "moved upgrades")

	for _, scriptLine := range []int{0, 1, 4, 11, 100} {
		if _, _, _, found := sm.Resolve(scriptLine); found {
			t.Errorf("Resolve(%d) returned found=true, expected false", scriptLine)
		}
	}
}

func TestSourceMap_AddIgnoresEmptyRange(t *testing.T) {
	sm := New()
	sm.Add(5, 4, "empty.sql", 1, "appended code")
	if sm.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", sm.Len())
	}
}

func TestSourceMap_Span(t *testing.T) {
	sm := New()
	sm.Add(16, 18, "a.sql", 2, "merged upgrades")
	sm.Add(20, 21, "b.sql", 1, "merged upgrades")
	sm.Add(22, 23, "a.sql", 6, "merged upgrades")

	start, end, found := sm.Span("a.sql")
	if !found || start != 16 || end != 23 {
		t.Errorf("Span(a.sql) = %d, %d, %v; expected 16, 23, true", start, end, found)
	}
	if _, _, found := sm.Span("missing.sql"); found {
		t.Error("Span(missing.sql) found=true, expected false")
	}
}

func TestSourceMap_EntriesIsCopy(t *testing.T) {
	sm := New()
	sm.Add(1, 2, "a.sql", 1, "prepended code")

	entries := sm.Entries()
	entries[0].File = "changed"

	if file, _, _, _ := sm.Resolve(1); file != "a.sql" {
		t.Errorf("Entries() exposed internal state; file = %q", file)
	}
}

func TestFromEntries(t *testing.T) {
	orig := New()
	orig.Add(3, 4, "a.sql", 1, "moved upgrades")

	rebuilt := FromEntries(orig.Entries())
	file, line, _, found := rebuilt.Resolve(4)
	if !found || file != "a.sql" || line != 2 {
		t.Errorf("Resolve(4) = %q, %d, %v; expected a.sql, 2, true", file, line, found)
	}
}
