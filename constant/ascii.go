package constant

import _ "embed"

// AsciiArtLogo is the banner shown on the root command's help screen.
//
//go:embed ascii.txt
var AsciiArtLogo string
