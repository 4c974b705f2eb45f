// Package config loads printdispatch's behaviour settings.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded/defaults.toml, compiled into the binary
//  2. printdispatch.toml or printdispatch.yaml beside the executable, or
//     the file named by --settings
//  3. PRINTDISPATCH_<SECTION>_<KEY> environment variables, for example
//     PRINTDISPATCH_EXTERNAL_TIMEOUT=30s
//  4. command line overrides
//
// The rule table itself (config.txt) is not a settings file; it keeps its
// line-oriented pattern|printer format and is read by package rules.
package config
