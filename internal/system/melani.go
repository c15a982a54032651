// Package system holds steno key layouts as configuration data.
package system

import "github.com/heartmarshall/melani-orthography/internal/steno"

// MelaniSpec is the Melani Italian layout: the number key, nine left-bank
// keys, the asterisk, and twelve right-bank keys. Left and right letters are
// told apart by case, so no stroke ever needs an explicit hyphen.
var MelaniSpec = steno.Spec{
	Keys: []string{
		"#",
		"S-", "P-", "C-", "T-", "H-", "V-", "R-", "I-", "A-",
		"*",
		"-E", "-O", "-c", "-s", "-t", "-h", "-p", "-r", "-i", "-e", "-a", "-o",
	},
	ImplicitHyphenKeys: []string{
		"S-", "P-", "C-", "T-", "H-", "V-", "R-", "I-", "A-",
		"*",
		"-E", "-O", "-c", "-s", "-t", "-h", "-p", "-r", "-i", "-e", "-a", "-o",
	},
	NumberKey: "#",
	Numbers: map[string]string{
		"S-": "1-",
		"P-": "2-",
		"T-": "3-",
		"V-": "4-",
		"I-": "5-",
		"-O": "-0",
		"-c": "-6",
		"-t": "-7",
		"-p": "-8",
		"-i": "-9",
	},
}

// Melani is the bundled default layout.
var Melani = steno.MustLayout(MelaniSpec)
