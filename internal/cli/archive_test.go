package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"zet/internal/cli"
)

func Test_Archive_Moves_Note_And_Stamps_Status(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteNote("refined", "idea.md", eligibleFleetingNote)

	stdout := c.MustRun("archive", path)

	cli.AssertContains(t, stdout, "archived:")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("archived source still exists: %v", err)
	}

	archived := c.ReadNote(filepath.Join(c.VaultDir(), "archive", "idea.md"))
	cli.AssertContains(t, archived, "status: archived")
	cli.AssertContains(t, archived, "modified:")
	// Body survives the metadata rewrite.
	cli.AssertContains(t, archived, "[[another-note]]")
}

func Test_Archive_By_Id_Resolves_Across_Vault_Dirs(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteNote("published", "abc1234.md", publishedNote)

	c.MustRun("archive", "abc1234")

	archived := c.ReadNote(filepath.Join(c.VaultDir(), "archive", "abc1234.md"))
	cli.AssertContains(t, archived, "status: archived")
}

func Test_Archive_Already_Archived_Fails(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	path := c.WriteNote("refined", "idea.md", eligibleFleetingNote)

	c.MustRun("archive", path)

	stderr := c.MustFail("archive", filepath.Join(c.VaultDir(), "archive", "idea.md"))
	cli.AssertContains(t, stderr, "already archived")
}

func Test_Archive_Missing_Note_Fails(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("archive", "missing")

	cli.AssertContains(t, stderr, "note not found: missing")
}
