package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLScanner_TopLevelAfterLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"empty", nil, true},
		{"plain statement", []string{"SELECT 1;"}, true},
		{"line comment with quote", []string{"-- don't stop here"}, true},
		{"open single quote", []string{"INSERT INTO t VALUES ('a"}, false},
		{"closed single quote", []string{"INSERT INTO t VALUES ('a", "b');"}, true},
		{"doubled quote stays open", []string{"SELECT 'it''s"}, false},
		{"escape string backslash quote", []string{`SELECT E'it\'s`}, false},
		{"escape string closed", []string{`SELECT E'it\'s';`}, true},
		{"open dollar quote", []string{"CREATE FUNCTION f() AS $$"}, false},
		{"closed dollar quote", []string{"CREATE FUNCTION f() AS $$", "BEGIN", "END;", "$$ LANGUAGE plpgsql;"}, true},
		{"other tag does not close", []string{"DO $outer$", "SELECT $$x$$;"}, false},
		{"tag closes", []string{"DO $outer$", "SELECT $$x$$;", "$outer$;"}, true},
		{"positional parameter", []string{"PREPARE p AS SELECT $1;"}, true},
		{"dollar inside identifier", []string{"SELECT a$b$c FROM t;"}, true},
		{"open block comment", []string{"/* note"}, false},
		{"nested block comment", []string{"/* a /* b */", "still inside"}, false},
		{"nested block comment closed", []string{"/* a /* b */", "*/"}, true},
		{"quoted identifier with quote", []string{`SELECT "it's" FROM t;`}, true},
		{"dollar in line comment", []string{"SELECT 1; -- costs $$"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sc sqlScanner
			for _, line := range tt.lines {
				sc.scanLine(line)
			}
			assert.Equal(t, tt.want, sc.topLevel())
		})
	}
}

func TestExtractDollarTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$$", "$$"},
		{"$body$ rest", "$body$"},
		{"$_x1$", "$_x1$"},
		{"$1", ""},
		{"$1$", ""},
		{"$a-b$", ""},
		{"$open", ""},
		{"x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDollarTag(tt.in, 0))
		})
	}
}
