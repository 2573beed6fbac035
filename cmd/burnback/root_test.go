package burnback

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\noutput: %s", args, err, buf.String())
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := runCLI(t, "--help")
	if !strings.Contains(out, "burnback") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burnback.db")
	for i := 0; i < 2; i++ {
		runCLI(t, "--db", path, "init")
	}
}

func TestBurnTableUsesProfileWeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burnback.db")
	// Default weight is 70kg: running burns 12.25 kcal/min, so 245 kcal
	// takes 20 minutes.
	out := runCLI(t, "--db", path, "burn", "--calories", "245")
	if !strings.Contains(out, "Running\t20") {
		t.Fatalf("expected Running row of 20 minutes, got:\n%s", out)
	}
	if !strings.Contains(out, "Walking\t") {
		t.Fatalf("expected a row per activity, got:\n%s", out)
	}
}

func TestScanLogFlowsIntoToday(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burnback.db")
	out := runCLI(t, "--db", path, "scan", "log", "--name", "Oatmeal", "--calories", "320")
	if !strings.Contains(out, "Recorded Oatmeal (320 kcal)") {
		t.Fatalf("unexpected scan output:\n%s", out)
	}

	out = runCLI(t, "--db", path, "today")
	if !strings.Contains(out, "Consumed: 320 kcal (1 scans)") {
		t.Fatalf("expected consumed total in today output:\n%s", out)
	}
	if !strings.Contains(out, "Remaining: 1680 kcal") {
		t.Fatalf("expected remaining against default 2000 goal:\n%s", out)
	}
}

func TestProfileSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burnback.db")
	runCLI(t, "--db", path, "profile", "set", "--gender", "female", "--age", "31", "--weight", "62.5", "--goal", "1800")

	out := runCLI(t, "--db", path, "profile", "show")
	for _, want := range []string{"Gender: female", "Age: 31", "Weight: 62.5 kg", "Daily goal: 1800 kcal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in profile output:\n%s", want, out)
		}
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burnback.db")
	runCLI(t, "--db", path, "init")

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--db", path, "clear"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected clear without --yes to fail")
	}

	runCLI(t, "--db", path, "clear", "--yes")
}

func TestActivityTypesListsTable(t *testing.T) {
	out := runCLI(t, "activity", "types")
	for _, want := range []string{"running", "jump_rope", "12.0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in types output:\n%s", want, out)
		}
	}
}
