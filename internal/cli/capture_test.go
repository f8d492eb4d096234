package cli_test

import (
	"strings"
	"testing"

	"zet/internal/cli"
)

func Test_Capture_Creates_Note_In_Capture_Dir(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.RunWithInput(
		"First thought about spaced repetition.\n",
		"capture", "Spaced repetition", "-t", "fleeting",
	)

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	path := strings.TrimSpace(stdout)
	if !strings.HasPrefix(path, c.CaptureDir()) {
		t.Fatalf("note path %q not under capture dir %q", path, c.CaptureDir())
	}

	if !strings.HasSuffix(path, ".md") {
		t.Fatalf("note path %q missing .md suffix", path)
	}

	content := c.ReadNote(path)
	cli.AssertContains(t, content, "type: fleeting")
	cli.AssertContains(t, content, "status: captured")
	cli.AssertContains(t, content, "created:")
	cli.AssertContains(t, content, "# Spaced repetition")
	cli.AssertContains(t, content, "First thought about spaced repetition.")
}

func Test_Capture_Records_Tags(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.MustRun("capture", "Zettelkasten", "-t", "permanent", "--tag", "pkm", "--tag", "method")

	content := c.ReadNote(path)
	cli.AssertContains(t, content, "type: permanent")
	cli.AssertContains(t, content, "pkm")
	cli.AssertContains(t, content, "method")
}

func Test_Capture_Without_Body_Writes_Title_Heading(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.MustRun("capture", "Just a title")

	content := c.ReadNote(path)
	cli.AssertContains(t, content, "# Just a title")
	// Default type when -t is omitted
	cli.AssertContains(t, content, "type: fleeting")
}

func Test_Capture_Rejects_Invalid_Input(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing title", args: []string{"capture"}, wantErr: "title is required"},
		{name: "invalid type", args: []string{"capture", "x", "-t", "journal"}, wantErr: "invalid type"},
		{name: "empty tag", args: []string{"capture", "x", "--tag", ""}, wantErr: "empty value not allowed"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stderr := c.MustFail(tt.args...)
			cli.AssertContains(t, stderr, tt.wantErr)
		})
	}
}

func Test_Capture_Twice_Creates_Distinct_Notes(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	first := c.MustRun("capture", "one")
	second := c.MustRun("capture", "two")

	if first == second {
		t.Fatalf("both captures wrote to %q", first)
	}
}
