package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	flagConfig      string
	flagYear        int
	flagDay         int
	flagSessionFile string
	flagWidth       int
	flagOverwrite   bool
	flagQuiet       bool
	flagDebug       bool
)

var rootCmd = &cobra.Command{
	Use:     "aoc",
	Short:   "Advent of Code command-line client",
	Long:    "Read puzzle descriptions, download inputs, submit answers and\nfollow your progress, all without leaving the terminal.",
	Version: version,
	Args:    cobra.NoArgs,
	// Reading the puzzle is the default action.
	RunE:          runRead,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", defaultConfigPath(), "path to config file")
	pf.IntVarP(&flagYear, "year", "y", 0, "puzzle year (default: current or most recent event)")
	pf.IntVarP(&flagDay, "day", "d", 0, "puzzle day (default: latest unlocked day)")
	pf.StringVarP(&flagSessionFile, "session-file", "s", "", "path to session token file")
	pf.IntVarP(&flagWidth, "width", "w", 0, "width at which to wrap output (default: terminal width)")
	pf.BoolVarP(&flagOverwrite, "overwrite", "o", false, "overwrite files if they already exist")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "restrict log messages to errors only")
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "debug")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		newLogger(zerolog.ErrorLevel).err(err.Error())
		os.Exit(1)
	}
}

// cliEnv carries the resolved configuration and logger into a command.
type cliEnv struct {
	cfg appConfig
	log *logger
}

func setupEnv() (*cliEnv, error) {
	level := zerolog.InfoLevel
	switch {
	case flagDebug:
		level = zerolog.DebugLevel
	case flagQuiet:
		level = zerolog.ErrorLevel
	}
	log := newLogger(level)

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagSessionFile != "" {
		cfg.SessionFile = flagSessionFile
	}
	if flagWidth > 0 {
		cfg.Width = flagWidth
	}
	if flagOverwrite {
		cfg.Overwrite = true
	}
	return &cliEnv{cfg: cfg, log: log}, nil
}

// newClient resolves the session credential and builds the client for one
// puzzle date.
func (e *cliEnv) newClient(date puzzleDate) (*aocClient, error) {
	session, err := resolveSession(defaultSessionSources(e.cfg.SessionFile), e.log)
	if err != nil {
		return nil, err
	}
	return newAocClient(e.cfg, date, session, e.log)
}

func (e *cliEnv) outputWidth() int {
	if e.cfg.Width > 0 {
		return e.cfg.Width
	}
	return terminalWidth()
}

// saveFile writes contents to path, refusing to clobber an existing file
// unless overwrite is set.
func saveFile(path string, overwrite bool, contents []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := f.Write(contents); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// eventTime reports the wall clock used for all date resolution.
func eventTime() time.Time {
	return time.Now().In(eventZone)
}
