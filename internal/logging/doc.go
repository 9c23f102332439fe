// Package logging provides structured logging for mvg.
//
// The package wraps a global zap logger. Logging is silent unless a level
// is given on the command line or through MVG_LOG_LEVEL, because the
// interactive board owns the terminal. Output goes to a file in that case:
//
//	if err := logging.Initialize("debug", "/tmp/mvg.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Log Levels
//
//   - Debug: request URLs, cache hits, redraw decisions
//   - Info: fetch outcomes, startup
//   - Warn: failed fetches that the board recovers from
//   - Error: failures that end the program
//
// All functions are safe for concurrent use.
package logging
