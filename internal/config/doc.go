// Package config loads config.toml for comicbox.
//
// Lookup order without --config is COMICBOX_CONFIG, then
// $XDG_CONFIG_HOME/comicbox/config.toml (or ~/.config/comicbox/config.toml),
// then comicbox.toml in the working directory. COMICBOX_LOG_LEVEL and
// COMICBOX_CATALOG_PATH override the file. Format names are folded to their
// canonical spelling, so "MetronInfo" and "comicbox-json" are accepted.
package config
