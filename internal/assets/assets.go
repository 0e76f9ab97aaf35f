// Package assets bundles the static datasets shipped with the bot.
package assets

import _ "embed"

// Chapters is the surah metadata table.
//
//go:embed chapters.json
var Chapters []byte

// Fragments is the bundled copy of the verse fragment asset.
//
//go:embed ayah_fragments.json
var Fragments []byte
