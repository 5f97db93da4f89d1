// Package file reads tashri's TOML files from disk: the user settings in
// ~/.tashri/config.toml and the source catalogue, which falls back to an
// embedded copy of the built-in statutes.
package file
