package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"zet/internal/cli"
)

func Test_Sweep_Promotes_Eligible_Notes(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	fleetingPath := c.WriteNote("capture", "idea.md", eligibleFleetingNote)
	c.WriteNote("capture", "unscored.md", unscoredFleetingNote)
	c.WriteNote("capture", "reading.md", eligibleLiteratureNote)

	stdout, stderr, exitCode := c.Run("sweep")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "promoted:")
	cli.AssertContains(t, stdout, "skipped:")
	cli.AssertContains(t, stdout, "not yet scored")
	cli.AssertContains(t, stdout, "3 candidate(s): 2 promoted, 1 skipped, 0 error(s)")

	// Promoted notes left the capture dir and carry their new status.
	if _, err := os.Stat(fleetingPath); !os.IsNotExist(err) {
		t.Errorf("promoted source still exists: %v", err)
	}

	moved := c.ReadNote(filepath.Join(c.VaultDir(), "refined", "idea.md"))
	cli.AssertContains(t, moved, "status: refined")
	cli.AssertContains(t, moved, "modified:")
}

func Test_Sweep_Permanent_Note_Goes_To_Published(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "claim.md", eligiblePermanentNote)

	c.MustRun("sweep")

	moved := c.ReadNote(filepath.Join(c.VaultDir(), "published", "claim.md"))
	cli.AssertContains(t, moved, "status: published")
}

func Test_Sweep_Dry_Run_Mutates_Nothing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteNote("capture", "idea.md", eligibleFleetingNote)

	stdout, stderr, exitCode := c.Run("sweep", "--dry-run")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "would promote:")
	cli.AssertContains(t, stdout, "(dry run)")

	if got, want := c.ReadNote(path), eligibleFleetingNote; got != want {
		t.Errorf("dry run changed the note:\n%s", got)
	}
}

func Test_Sweep_Exit_Code_On_Per_Note_Errors(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "idea.md", eligibleFleetingNote)
	c.WriteNote("capture", "broken.md", corruptNote)

	stdout, stderr, exitCode := c.Run("sweep")

	// Partial success: the good note was promoted, the corrupt one errored.
	if got, want := exitCode, 1; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "promoted:")
	cli.AssertContains(t, stdout, "error:")
	cli.AssertContains(t, stdout, "2 candidate(s): 1 promoted, 0 skipped, 1 error(s)")
	cli.AssertContains(t, stderr, "sweep completed with 1 error(s)")
}

func Test_Sweep_Json_Emits_Batch_Contract(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "idea.md", eligibleFleetingNote)
	c.WriteNote("capture", "unscored.md", unscoredFleetingNote)

	stdout, stderr, exitCode := c.Run("sweep", "--json")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	var decoded struct {
		TotalCandidates int                       `json:"totalCandidates"`
		PromotedCount   int                       `json:"promotedCount"`
		SkippedCount    int                       `json:"skippedCount"`
		ErrorCount      int                       `json:"errorCount"`
		ByType          map[string]map[string]int `json:"byType"`
		DryRun          bool                      `json:"dryRun"`
	}

	if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
		t.Fatalf("sweep --json output is not valid JSON: %v\noutput: %s", err, stdout)
	}

	if got, want := decoded.TotalCandidates, 2; got != want {
		t.Errorf("totalCandidates=%d, want=%d", got, want)
	}

	if got, want := decoded.PromotedCount, 1; got != want {
		t.Errorf("promotedCount=%d, want=%d", got, want)
	}

	if got, want := decoded.ByType["fleeting"]["promoted"], 1; got != want {
		t.Errorf("byType[fleeting][promoted]=%d, want=%d", got, want)
	}

	if got, want := decoded.ByType["fleeting"]["skipped"], 1; got != want {
		t.Errorf("byType[fleeting][skipped]=%d, want=%d", got, want)
	}
}

func Test_Sweep_Empty_Capture_Dir(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	if err := os.MkdirAll(c.CaptureDir(), 0o750); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, exitCode := c.Run("sweep")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "0 candidate(s): 0 promoted, 0 skipped, 0 error(s)")
}

func Test_Sweep_Missing_Capture_Dir_Is_Fatal(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("sweep")

	// No capture directory means a misconfigured vault, not an empty batch.
	if got, want := exitCode, 2; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stderr, "note directory not found")

	if stdout != "" {
		t.Errorf("stdout=%q, want empty", stdout)
	}
}

func Test_Sweep_Twice_Is_Idempotent(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "idea.md", eligibleFleetingNote)

	c.MustRun("sweep")
	stdout := c.MustRun("sweep")

	cli.AssertContains(t, stdout, "0 candidate(s): 0 promoted, 0 skipped, 0 error(s)")
}
