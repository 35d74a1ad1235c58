// Package report defines the result envelope the command-line tools
// emit. Every run produces exactly one Result, success or failure, so
// downstream consumers (dashboards, cron jobs piping into jq) can parse
// the output without branching on exit status alone. Sections that do
// not apply to a tool are omitted rather than zero-filled.
package report
