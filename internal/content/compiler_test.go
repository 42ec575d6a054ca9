package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/mush/internal/logging"
)

func writeSource(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func keys(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Key
	}
	return out
}

func TestCompiler_GuidelinesSorted(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "z.md", "Z")
	writeSource(t, dir, "a.md", "A")
	writeSource(t, dir, "m.md", "M")

	records, err := NewCompiler(logging.ForTest(t)).Guidelines(dir)
	if err != nil {
		t.Fatalf("Guidelines() error = %v", err)
	}

	if got, want := JoinGuidelines(records), "A\n\nM\n\nZ"; got != want {
		t.Errorf("JoinGuidelines() = %q, want %q", got, want)
	}
	if got := keys(records); got[0] != "a.md" || got[2] != "z.md" {
		t.Errorf("keys = %v, want file names in order", got)
	}
}

func TestCompiler_SkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "empty.md", "")
	writeSource(t, dir, "blank.md", "  \n\t\n")
	writeSource(t, dir, "real.md", "content")
	writeSource(t, dir, "notes.txt", "ignored")

	records, err := NewCompiler(logging.ForTest(t)).Commands(dir)
	if err != nil {
		t.Fatalf("Commands() error = %v", err)
	}
	if len(records) != 1 || records[0].Key != "real" {
		t.Errorf("records = %+v, want only real", records)
	}
}

func TestCompiler_Skills(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "review/SKILL.md", "---\nname: Code Review\ndescription: Reviews diffs\n---\n\nLook carefully.\n")
	writeSource(t, dir, "deploy/SKILL.md", "Ship it.")
	writeSource(t, dir, "stray.md", "not a skill")
	writeSource(t, dir, "empty/SKILL.md", "\n")
	writeSource(t, dir, "nested/deeper/SKILL.md", "too deep")

	records, err := NewCompiler(logging.ForTest(t)).Skills(dir)
	if err != nil {
		t.Fatalf("Skills() error = %v", err)
	}

	got := keys(records)
	if len(got) != 2 || got[0] != "deploy" || got[1] != "review" {
		t.Fatalf("keys = %v, want [deploy review]", got)
	}

	deploy, review := records[0], records[1]
	if deploy.Name != "deploy" || deploy.Description != "" || deploy.Body != "Ship it." {
		t.Errorf("deploy = %+v", deploy)
	}
	if review.Name != "Code Review" || review.Description != "Reviews diffs" || review.Body != "Look carefully." {
		t.Errorf("review = %+v", review)
	}
}

func TestCompiler_AgentsFallbackOnBadHeader(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "planner.md", "---\nname: [unclosed\n---\nPlan things.\n")

	records, err := NewCompiler(logging.ForTest(t)).Agents(dir)
	if err != nil {
		t.Fatalf("Agents() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Name != "planner" || records[0].Body != "Plan things." {
		t.Errorf("record = %+v, want fallback name and post-header body", records[0])
	}
}

func TestCompiler_NumericName(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "v.md", "---\nname: 42\n---\nbody")

	records, err := NewCompiler(nil).Agents(dir)
	if err != nil {
		t.Fatalf("Agents() error = %v", err)
	}
	if records[0].Name != "42" {
		t.Errorf("Name = %q, want 42", records[0].Name)
	}
}

func TestCompiler_MissingDir(t *testing.T) {
	records, err := NewCompiler(nil).Guidelines(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Guidelines() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want none", records)
	}
}
