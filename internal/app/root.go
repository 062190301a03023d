package app

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/halvard/ffind/internal/config"
)

// Execute builds the root command and runs it.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand creates the root cobra command for ffind. Flags bind
// directly to a default Config; values from the optional YAML config file
// fill in whichever of its fields were not set on the command line.
func NewRootCommand(version string) *cobra.Command {
	cfg := config.Default()
	var (
		configPath string
		execStr    string
	)

	cmd := &cobra.Command{
		Use:   "ffind [flags] [pattern] [path...]",
		Short: "Find filesystem entries by pattern, honoring ignore files",
		Long: `ffind walks one or more directory trees and prints every entry matching
a glob pattern plus optional type, size, time and depth constraints,
while honoring .gitignore, .ignore, .fdignore and a global ignore file.

With no pattern every entry is listed. The pattern matches basenames by
default; --full-path matches the whole relative path. Case sensitivity
is smart: patterns containing an uppercase letter match case-sensitively.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			fileCfg, err := config.Load(path)
			if err != nil {
				return err
			}
			mergeFileConfig(cmd, cfg, fileCfg)

			if len(args) > 0 {
				cfg.Pattern = args[0]
				cfg.Paths = args[1:]
			}
			if execStr != "" {
				cfg.Exec = strings.Fields(execStr)
			}
			return Run(cfg)
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(&cfg.Hidden, "hidden", "H", cfg.Hidden, "include hidden files and directories")
	fs.BoolVarP(&cfg.NoIgnore, "no-ignore", "I", false, "disable all ignore files")
	fs.BoolVar(&cfg.NoIgnoreVCS, "no-ignore-vcs", cfg.NoIgnoreVCS, "disable .gitignore files")
	fs.BoolVar(&cfg.NoIgnoreLocal, "no-ignore-local", cfg.NoIgnoreLocal, "disable .ignore and .fdignore files")
	fs.BoolVar(&cfg.NoGlobalIgnore, "no-global-ignore", cfg.NoGlobalIgnore, "disable the global ignore file")
	fs.BoolVar(&cfg.NoRequireGit, "no-require-git", cfg.NoRequireGit, "honor .gitignore files outside git repositories")
	fs.BoolVarP(&cfg.CaseSensitive, "case-sensitive", "s", false, "match case-sensitively (default: smart case)")
	fs.BoolVarP(&cfg.IgnoreCase, "ignore-case", "i", false, "match case-insensitively (default: smart case)")
	fs.BoolVarP(&cfg.FullPath, "full-path", "p", false, "match the pattern against the full relative path")
	fs.BoolVarP(&cfg.AbsolutePath, "absolute-path", "a", cfg.AbsolutePath, "print absolute paths")
	fs.IntVarP(&cfg.MaxDepth, "max-depth", "d", cfg.MaxDepth, "maximum directory levels to descend (-1: unlimited)")
	fs.IntVar(&cfg.MinDepth, "min-depth", cfg.MinDepth, "only report entries at least this deep")
	fs.IntVar(&cfg.ExactDepth, "exact-depth", cfg.ExactDepth, "only report entries at exactly this depth")
	fs.StringArrayVarP(&cfg.Types, "type", "t", nil, "entry type: f|d|l|s|p|b|c|x|e (repeatable)")
	fs.StringArrayVarP(&cfg.Sizes, "size", "S", nil, "size constraint like +1k or -10mi (repeatable)")
	fs.StringVar(&cfg.ChangedWithin, "changed-within", "", "only files modified within the given duration or since the given date")
	fs.StringVar(&cfg.ChangedBefore, "changed-before", "", "only files modified before the given duration ago or date")
	fs.StringArrayVarP(&cfg.Excludes, "exclude", "E", nil, "exclude entries matching the glob (repeatable)")
	fs.BoolVarP(&cfg.Follow, "follow", "L", cfg.Follow, "descend into symlinked directories")
	fs.BoolVar(&cfg.OneFileSystem, "one-file-system", cfg.OneFileSystem, "do not cross filesystem boundaries")
	fs.BoolVarP(&cfg.Print0, "print0", "0", false, "separate results with NUL instead of newline")
	fs.StringVar(&cfg.Format, "format", "", "render results through a template ({}, {/}, {//}, {.}, {/.})")
	fs.StringVarP(&execStr, "exec", "x", "", "run the given command for every result")
	fs.IntVarP(&cfg.Threads, "threads", "j", cfg.Threads, "worker count for --exec")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print nothing; exit 1 when there is no match")
	fs.BoolVar(&cfg.Stats, "stats", false, "print search statistics at the end")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "when to colorize output: auto, always, never")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error, none")
	fs.StringVar(&configPath, "config", "", "config file to read defaults from")

	return cmd
}

// mergeFileConfig copies config-file values into cfg for every
// file-settable field whose flag was not given on the command line, so the
// precedence is flags over file over defaults.
func mergeFileConfig(cmd *cobra.Command, cfg, file *config.Config) {
	fs := cmd.Flags()
	if !fs.Changed("hidden") {
		cfg.Hidden = file.Hidden
	}
	if !fs.Changed("no-ignore-vcs") {
		cfg.NoIgnoreVCS = file.NoIgnoreVCS
	}
	if !fs.Changed("no-ignore-local") {
		cfg.NoIgnoreLocal = file.NoIgnoreLocal
	}
	if !fs.Changed("no-global-ignore") {
		cfg.NoGlobalIgnore = file.NoGlobalIgnore
	}
	if !fs.Changed("no-require-git") {
		cfg.NoRequireGit = file.NoRequireGit
	}
	if cfg.GlobalIgnorePath == "" {
		cfg.GlobalIgnorePath = file.GlobalIgnorePath
	}
	if !fs.Changed("exclude") {
		cfg.Excludes = file.Excludes
	}
	if !fs.Changed("follow") {
		cfg.Follow = file.Follow
	}
	if !fs.Changed("one-file-system") {
		cfg.OneFileSystem = file.OneFileSystem
	}
	if !fs.Changed("absolute-path") {
		cfg.AbsolutePath = file.AbsolutePath
	}
	if !fs.Changed("color") {
		cfg.Color = file.Color
	}
	if !fs.Changed("threads") {
		cfg.Threads = file.Threads
	}
	if !fs.Changed("log-level") {
		cfg.LogLevel = file.LogLevel
	}
}
