// Package cli wires the lstree command line: flag parsing, mode
// dispatch, and color-choice handling.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/lstree/internal/lscolors"
	"github.com/danieljhkim/lstree/internal/render"
	"github.com/danieljhkim/lstree/internal/tree"
	"github.com/danieljhkim/lstree/internal/value"
	"github.com/danieljhkim/lstree/internal/view"
)

var (
	pathMode    bool
	level       int
	dirsOnly    bool
	showSize    bool
	permissions bool
	showAll     bool
	gitignore   bool
	gitStatus   bool
	showIcons   bool
	colorWhen   string
	indentWidth int
)

// rootCmd is the root command for lstree.
var rootCmd = &cobra.Command{
	Use:     "lstree [flags] [path]",
	Version: "dev",
	Short:   "Render structured data or a directory as a tree",
	Long: `lstree renders input as an indented tree.

By default it reads YAML or JSON documents from stdin (or a file argument)
and prints their structure. With --path, the argument is a directory to
walk, and each entry is decorated with git status, permissions, icons,
and size.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorChoice(); err != nil {
			return err
		}
		if pathMode {
			return runPath(cmd, args)
		}
		return runData(cmd, args)
	},
}

// SetVersion overrides the reported version when set by the build.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&pathMode, "path", false, "Treat the argument as a directory to walk")
	flags.IntVarP(&level, "level", "L", 0, "Maximum depth to descend (0 = unlimited)")
	flags.BoolVarP(&dirsOnly, "dirs-only", "d", false, "Display directories only")
	flags.BoolVarP(&showSize, "size", "s", false, "Display the size of files")
	flags.BoolVarP(&permissions, "permissions", "p", false, "Display file permissions")
	flags.BoolVarP(&showAll, "all", "a", false, "Show all files, including hidden ones")
	flags.BoolVarP(&gitignore, "gitignore", "g", false, "Respect .gitignore files")
	flags.BoolVarP(&gitStatus, "git-status", "G", false, "Show git status for entries")
	flags.BoolVar(&showIcons, "icons", false, "Display file-type icons (requires a Nerd Font)")
	flags.StringVar(&colorWhen, "color", "auto", "When to colorize output (always|auto|never)")
	flags.IntVar(&indentWidth, "indent", 4, "Indent width for data-mode trees")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the lstree CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}

// applyColorChoice maps --color onto the global color toggle.
func applyColorChoice() error {
	switch colorWhen {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		fd := os.Stdout.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	default:
		return fmt.Errorf("invalid --color value '%s' (expected always, auto, or never)", colorWhen)
	}
	return nil
}

// displayFlagsChanged reports whether the user toggled any per-entry
// display option explicitly.
func displayFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"dirs-only", "size", "permissions", "all", "git-status", "icons"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// runPath renders the directory tree view.
func runPath(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("expected a folder path to be provided when using --path flag")
	}

	opts := view.Options{
		Level:       level,
		DirsOnly:    dirsOnly,
		Size:        showSize,
		Permissions: permissions,
		All:         showAll,
		Gitignore:   gitignore,
		GitStatus:   gitStatus,
		Icons:       showIcons,
	}

	// Bare --path keeps the original full decoration bundle; any
	// explicit display flag switches to exactly what was asked.
	if !displayFlagsChanged(cmd) {
		opts.Size = true
		opts.Permissions = true
		opts.All = true
		opts.GitStatus = true
		opts.Icons = true
		if !cmd.Flags().Changed("color") {
			color.NoColor = false
		}
	}

	if env := os.Getenv("LS_COLORS"); env != "" {
		opts.Colors = lscolors.Parse(env)
	}

	return view.Run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
}

// runData decodes structured input and renders it as a tree.
func runData(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	val, err := value.DecodeAll(in)
	if err != nil {
		return err
	}

	cfg := render.DefaultConfig()
	cfg.Indent = indentWidth
	render.Tree(cmd.OutOrStdout(), tree.FromValue(val), cfg)
	return nil
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
