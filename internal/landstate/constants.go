package landstate

// PlotsPerLine is how many plot cells share one status line
const PlotsPerLine = 4

// CellWidth is the display width each plot cell is padded to
const CellWidth = 24

// Cell labels
const (
	LabelEmpty    = "empty"
	LabelDead     = "dead"
	LabelReady    = "ready"
	LabelSoon     = "due"
	LabelUnknown  = "?"
	MarkWater     = "~"
	MarkWeed      = "*"
	MarkBug       = "!"
	CellFmt       = "[%02d] %s"
	SummaryFmt    = "ripe %d | growing %d | empty %d | dead %d | water %d weed %d bug %d"
	SummaryMinFmt = " | next %s"
)

// Log messages
const (
	LogMsgMalformedPlant = "Plant has malformed phase data, treating as empty"
)
