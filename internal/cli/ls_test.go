package cli_test

import (
	"strings"
	"testing"

	"zet/internal/cli"
)

func Test_Ls_Shows_Status_Type_And_Eligibility(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "idea.md", eligibleFleetingNote)
	c.WriteNote("capture", "unscored.md", unscoredFleetingNote)
	c.WriteNote("capture", "reading.md", eligibleLiteratureNote)

	stdout := c.MustRun("ls")

	cli.AssertContains(t, stdout, "idea [captured/fleeting] - Linked idea (ready)")
	cli.AssertContains(t, stdout, "unscored [captured/fleeting] - Unscored idea (not yet scored)")
	cli.AssertContains(t, stdout, "reading [triaged/literature] - Reading notes (ready)")
}

func Test_Ls_Ready_Filter(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "idea.md", eligibleFleetingNote)
	c.WriteNote("capture", "unscored.md", unscoredFleetingNote)

	stdout := c.MustRun("ls", "--ready")

	cli.AssertContains(t, stdout, "idea")
	cli.AssertNotContains(t, stdout, "unscored")
}

func Test_Ls_Type_Filter(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "idea.md", eligibleFleetingNote)
	c.WriteNote("capture", "reading.md", eligibleLiteratureNote)

	stdout := c.MustRun("ls", "--type", "literature")

	cli.AssertContains(t, stdout, "reading")
	cli.AssertNotContains(t, stdout, "idea")
}

func Test_Ls_Rejects_Invalid_Type_Filter(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("ls", "--type", "journal")

	cli.AssertContains(t, stderr, "invalid type: journal")
}

func Test_Ls_Warns_On_Corrupt_Note(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("capture", "idea.md", eligibleFleetingNote)
	c.WriteNote("capture", "broken.md", corruptNote)

	stdout, stderr, exitCode := c.Run("ls")

	// Warnings flag attention without suppressing the listing.
	if got, want := exitCode, 1; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "idea")
	cli.AssertContains(t, stderr, "warning:")
	cli.AssertContains(t, stderr, "broken.md")
}

func Test_Ls_Empty_Capture_Dir(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("ls")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	if got, want := strings.TrimSpace(stdout), ""; got != want {
		t.Errorf("stdout=%q, want empty", got)
	}
}
