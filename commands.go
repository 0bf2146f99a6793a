package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagInputOnly  bool
	flagPuzzleOnly bool
	flagInputFile  string
	flagPuzzleFile string
)

var readCmd = &cobra.Command{
	Use:     "read",
	Aliases: []string{"r"},
	Short:   "Read the puzzle description (the default command)",
	Args:    cobra.NoArgs,
	RunE:    runRead,
}

var downloadCmd = &cobra.Command{
	Use:     "download",
	Aliases: []string{"d"},
	Short:   "Save puzzle description and input to files",
	Args:    cobra.NoArgs,
	RunE:    runDownload,
}

var submitCmd = &cobra.Command{
	Use:     "submit <part> <answer>",
	Aliases: []string{"s"},
	Short:   "Submit a puzzle answer",
	Args:    cobra.ExactArgs(2),
	RunE:    runSubmit,
}

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"c"},
	Short:   "Show the event calendar and stars collected",
	Args:    cobra.NoArgs,
	RunE:    runCalendar,
}

var leaderboardCmd = &cobra.Command{
	Use:     "private-leaderboard <id>",
	Aliases: []string{"p"},
	Short:   "Show the state of a private leaderboard",
	Args:    cobra.ExactArgs(1),
	RunE:    runLeaderboard,
}

func init() {
	downloadCmd.Flags().BoolVarP(&flagInputOnly, "input-only", "I", false, "download puzzle input only")
	downloadCmd.Flags().BoolVarP(&flagPuzzleOnly, "puzzle-only", "P", false, "download puzzle description only")
	downloadCmd.Flags().StringVarP(&flagInputFile, "input-file", "i", "input", "path where to save puzzle input")
	downloadCmd.Flags().StringVarP(&flagPuzzleFile, "puzzle-file", "p", "puzzle.md", "path where to save puzzle description")
	downloadCmd.MarkFlagsMutuallyExclusive("input-only", "puzzle-only")

	rootCmd.AddCommand(readCmd, downloadCmd, submitCmd, calendarCmd, leaderboardCmd)
}

func runRead(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}
	now := eventTime()
	date, err := resolvePuzzleDate(flagYear, flagDay, now)
	if err != nil {
		return err
	}
	client, err := env.newClient(date)
	if err != nil {
		return err
	}

	content, err := client.fetchPuzzle(cmd.Context(), now)
	if err != nil {
		return err
	}
	out, err := renderPuzzle(content.markdown(), env.outputWidth())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runDownload(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}
	now := eventTime()
	date, err := resolvePuzzleDate(flagYear, flagDay, now)
	if err != nil {
		return err
	}
	client, err := env.newClient(date)
	if err != nil {
		return err
	}

	if !flagInputOnly {
		content, err := client.fetchPuzzle(cmd.Context(), now)
		if err != nil {
			return err
		}
		if err := saveFile(flagPuzzleFile, env.cfg.Overwrite, []byte(content.markdown())); err != nil {
			return err
		}
		env.log.infof("saved puzzle description to %s", flagPuzzleFile)
	}
	if !flagPuzzleOnly {
		input, err := client.fetchInput(cmd.Context(), now)
		if err != nil {
			return err
		}
		if err := saveFile(flagInputFile, env.cfg.Overwrite, input); err != nil {
			return err
		}
		env.log.infof("saved puzzle input to %s", flagInputFile)
	}
	return nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	part, err := strconv.Atoi(args[0])
	if err != nil || (part != 1 && part != 2) {
		return fmt.Errorf("puzzle part must be 1 or 2, got %q", args[0])
	}

	env, err := setupEnv()
	if err != nil {
		return err
	}
	now := eventTime()
	date, err := resolvePuzzleDate(flagYear, flagDay, now)
	if err != nil {
		return err
	}
	client, err := env.newClient(date)
	if err != nil {
		return err
	}

	verdict, err := client.submitAnswer(cmd.Context(), now, part, args[1])
	if err != nil {
		return err
	}
	if verdict.Kind == verdictTooRecent {
		env.log.warnf("submission throttled, try again in %s", verdict.Wait)
	}
	fmt.Println(renderVerdict(verdict))
	return nil
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}
	now := eventTime()
	year, err := resolveYear(flagYear, now)
	if err != nil {
		return err
	}
	client, err := env.newClient(puzzleDate{Year: year, Day: firstPuzzleDay})
	if err != nil {
		return err
	}

	entries, err := client.fetchCalendar(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Print(renderCalendar(entries, year))
	return nil
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("leaderboard id must be a positive number, got %q", args[0])
	}

	env, err := setupEnv()
	if err != nil {
		return err
	}
	now := eventTime()
	year, err := resolveYear(flagYear, now)
	if err != nil {
		return err
	}
	client, err := env.newClient(puzzleDate{Year: year, Day: firstPuzzleDay})
	if err != nil {
		return err
	}

	lb, err := client.fetchLeaderboard(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Print(renderLeaderboard(lb, lastUnlockedDay(year, now)))
	return nil
}
