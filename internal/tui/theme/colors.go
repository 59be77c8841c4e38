package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent   = lipgloss.Color("#00F19F") // highlights, commission totals
	ColorInfo     = lipgloss.Color("#67AEE6") // neutral data, client counts
	ColorChart    = lipgloss.Color("#0093E7") // history series
	ColorPositive = lipgloss.Color("#16EC06")
	ColorWarning  = lipgloss.Color("#FFDE00") // pending amounts, reconnecting
	ColorNegative = lipgloss.Color("#FF0026")
)

var (
	ColorBgDark  = lipgloss.Color("#101518")
	ColorBgLight = lipgloss.Color("#283339") // panel borders, skeletons
)
