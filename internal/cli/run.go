// Package cli implements the zet command line interface: global flag
// handling, config resolution, and dispatch to the per-verb commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	zetfs "zet/internal/fs"
	"zet/internal/logging"
	"zet/internal/note"
	"zet/internal/promote"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(out)

		return 0
	}

	cfg, err := note.LoadConfig(note.LoadConfigInput{
		WorkDirOverride:  flags.workDir,
		ConfigPath:       flags.configPath,
		VaultDirOverride: flags.vaultDir,
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	log := logging.Discard()
	if flags.verbose {
		log = logging.New(errOut, "zet", "debug")
	}

	store := note.NewStore(zetfs.NewReal())
	engine := promote.New(store, promote.Config{
		CaptureDir:   cfg.CaptureDir(),
		RefinedDir:   cfg.RefinedDir(),
		PublishedDir: cfg.PublishedDir(),
		Thresholds: promote.Thresholds{
			FleetingScore:  cfg.FleetingScore,
			PermanentScore: cfg.PermanentScore,
		},
	}, log)

	commands := []*Command{
		CaptureCmd(&cfg, store, stdin),
		LsCmd(&cfg, store),
		ShowCmd(&cfg, store),
		PromoteCmd(&cfg, engine),
		SweepCmd(engine),
		ArchiveCmd(&cfg, store),
		PrintConfigCmd(&cfg),
	}

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			<-sigCh
			cancel()
		}()
	}

	ioCtx := NewIO(out, errOut)

	code := cmd.Run(ctx, ioCtx, flags.remaining[1:])
	if code != 0 {
		return code
	}

	return ioCtx.Finish()
}

type globalFlags struct {
	workDir    string
	configPath string
	vaultDir   string
	verbose    bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", note.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --vault-dir flag
	if arg == "--vault-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", note.ErrFlagRequiresArg, arg)
		}

		flags.vaultDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--vault-dir="); ok {
		flags.vaultDir = after

		return consumedOne, nil
	}

	// -v/--verbose flag
	if arg == "-v" || arg == "--verbose" {
		flags.verbose = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", note.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer) {
	fprintln(writer, `zet - personal knowledge-base manager

Usage: zet [options] <command> [args]

Options:
  -C, --cwd <dir>     Run as if started in <dir>
  -c, --config        Use specified config file
  --vault-dir <dir>   Override the vault directory
  -v, --verbose       Log engine decisions to stderr

Commands:
  capture <title>        Capture a new note, prints its path
  ls                     List capture notes with eligibility
  show <id|path>         Print a note
  promote <id|path>      Promote a single note
  sweep [flags]          Promote every eligible capture note
  archive <id|path>      Archive a note
  print-config           Show resolved configuration`)
}
