// Package feed implements the live price feed watcher.
//
// The Watcher:
//   - Polls GET /feed on a fixed interval (default 10s, sorted by price)
//   - Reports listings that were not in the previous cycle
//   - Flags a new high when the top price rises between cycles
//   - Logs and counts poll errors without stopping
package feed
