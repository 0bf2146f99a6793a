// Package main implements aoc, a command-line client for the Advent of
// Code website.
//
// # Features
//
//   - Read puzzle descriptions in the terminal, rendered from the site's
//     HTML
//   - Download puzzle descriptions (as Markdown) and raw inputs to files
//   - Submit answers and get the classified verdict, including the wait
//     time when submitting too fast
//   - Show the event calendar with collected stars and private leaderboard
//     standings
//
// # Usage
//
//	aoc [read|download|submit|calendar|private-leaderboard] [flags]
//
// Running aoc without a subcommand reads the current puzzle.
//
// # Authentication
//
// Requests are authenticated with the site's session cookie. The token is
// looked up, in order, in the file given by --session-file, the
// ADVENT_OF_CODE_SESSION environment variable, ~/.adventofcode.session and
// adventofcode.session in the user config directory.
//
// # Configuration
//
// An optional JSON config file (default: aoc-cli/config.json in the user
// config directory) can set the base URL, user agent, session file path,
// output width and overwrite policy. A .env file in the working directory
// is loaded at startup.
package main
