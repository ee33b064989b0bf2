// Package icons maps WMO weather codes to Nerd Font glyphs. The tables are
// static read-only configuration keyed by the string form of the code, with
// separate day and night variants.
package icons

import "strconv"

const fallbackIcon = ""

var dayIcons = map[string]string{
	"0":  "",
	"1":  "",
	"2":  "",
	"3":  "",
	"45": "",
	"48": "",
	"51": "",
	"53": "",
	"55": "",
	"61": "",
	"63": "",
	"65": "",
	"71": "",
	"73": "",
	"75": "",
	"80": "",
	"81": "",
	"82": "",
	"85": "",
	"86": "",
	"95": "\U000f067e",
	"96": "\U000f067e",
	"99": "\U000f067e",
}

var nightIcons = map[string]string{
	"0":  "",
	"1":  "",
	"2":  "",
	"3":  "",
	"45": "",
	"48": "",
	"51": "",
	"53": "",
	"55": "",
	"61": "",
	"63": "",
	"65": "",
	"71": "",
	"73": "",
	"75": "",
	"80": "",
	"81": "",
	"82": "",
	"85": "",
	"86": "",
	"95": "\U000f067e",
	"96": "\U000f067e",
	"99": "\U000f067e",
}

// Lookup returns the glyph for a weather code, picking the day or night
// table. Unknown codes map to a neutral fallback glyph.
func Lookup(code int, isDay bool) string {
	key := strconv.Itoa(code)

	table := nightIcons
	if isDay {
		table = dayIcons
	}

	if icon, ok := table[key]; ok {
		return icon
	}
	return fallbackIcon
}
