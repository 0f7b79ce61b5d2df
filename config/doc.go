// Package config loads hansard's settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables (DATABASE_URL, DYNO, HANSARD_TABLE), then command
// line flags applied by the caller.
//
//	database:
//	  url: postgres://hansard@localhost/hansard
//	  table: hansard
//	catalog:
//	  path: static/topics.json
//	embedding:
//	  host: http://localhost:11434
//	  model: all-minilm
//	  cache_dir: /var/cache/hansard
//	names:
//	  mode: fuzzy
package config
