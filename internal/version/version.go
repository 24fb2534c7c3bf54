// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - HTTP API, interactive search prompt, Horizons fetch
// 0.3.0 - Vimshottari dasas, JSON chart export, TOML config
// 0.2.0 - Event query language, next/previous occurrence search, frequency estimates
// 0.1.0 - Initial release: binary ephemeris tables, calculated fallback, chart table
