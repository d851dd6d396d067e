package entities

import "strings"

// ANSI-CTA-708-E service and window limits
const (
	MinService    = 1
	MaxService    = 6
	MaxWindows    = 8
	DefaultWindow = 0
)

// PTSClockRate is the 90 kHz MPEG system clock used by presentation timestamps.
const PTSClockRate = 90000

type DecoderState string

const (
	DecoderUnconfigured DecoderState = "unconfigured"
	DecoderConfigured   DecoderState = "configured"
	DecoderDecoding     DecoderState = "decoding"
	// DecoderError is reserved, no transition enters it.
	DecoderError  DecoderState = "error"
	DecoderClosed DecoderState = "closed"
)

// ValidService reports whether service is a caption service number (1-6).
func ValidService(service int) bool {
	return service >= MinService && service <= MaxService
}

type CaptionWindow struct {
	ID      int
	Visible bool
	// AnchorVertical and AnchorHorizontal are percentages when RelativePositioning is set.
	AnchorVertical      int
	AnchorHorizontal    int
	AnchorPoint         int
	RowCount            int
	ColumnCount         int
	RowLock             bool
	ColumnLock          bool
	Priority            int
	RelativePositioning bool
	WindowStyle         int
	PenStyle            int
}

type PenSize int

const (
	PenSizeSmall PenSize = iota
	PenSizeStandard
	PenSizeLarge
)

type FontStyle int

const (
	FontStyleDefault FontStyle = iota
	FontStyleMonospacedSerif
	FontStyleProportionalSerif
	FontStyleMonospacedSansSerif
	FontStyleProportionalSansSerif
	FontStyleCasual
	FontStyleCursive
	FontStyleSmallCapitals
)

type TextOffset int

const (
	TextOffsetSubscript TextOffset = iota
	TextOffsetNormal
	TextOffsetSuperscript
)

type EdgeType int

const (
	EdgeNone EdgeType = iota
	EdgeRaised
	EdgeDepressed
	EdgeUniform
	EdgeDropShadow
)

type Opacity int

const (
	OpacitySolid Opacity = iota
	OpacityFlash
	OpacityTranslucent
	OpacityTransparent
)

type PenAttributes struct {
	Size      PenSize
	Font      FontStyle
	Tag       int
	Offset    TextOffset
	Italics   bool
	Underline bool
	Edge      EdgeType
}

type PenColor struct {
	Red     uint8
	Green   uint8
	Blue    uint8
	Opacity Opacity
}

// Pen is the complete text style applied to subsequent characters.
type Pen struct {
	Attributes PenAttributes
	Foreground PenColor
	Background PenColor
	Edge       PenColor
}

// DefaultPen is white standard text on a solid black background.
func DefaultPen() Pen {
	return Pen{
		Attributes: PenAttributes{
			Size:   PenSizeStandard,
			Font:   FontStyleDefault,
			Offset: TextOffsetNormal,
			Edge:   EdgeNone,
		},
		Foreground: PenColor{Red: 0xff, Green: 0xff, Blue: 0xff, Opacity: OpacitySolid},
		Background: PenColor{Opacity: OpacitySolid},
		Edge:       PenColor{Opacity: OpacitySolid},
	}
}

type CaptionTextRun struct {
	Text       string
	Attributes PenAttributes
	Foreground PenColor
	Background PenColor
	Edge       PenColor
	// PTS is the 90 kHz presentation timestamp active when the run began.
	PTS *int64 `json:",omitempty"`
}

// Pen returns the style snapshot the run was started with.
func (r CaptionTextRun) Pen() Pen {
	return Pen{Attributes: r.Attributes, Foreground: r.Foreground, Background: r.Background, Edge: r.Edge}
}

type DecodedCaption struct {
	Service       int
	Windows       map[int]CaptionWindow
	CurrentWindow int
	Runs          []CaptionTextRun
	PTS           *int64 `json:",omitempty"`
}

// Text joins the text of every run.
func (c *DecodedCaption) Text() string {
	var b strings.Builder
	for _, r := range c.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

type CaptionDecoderConfig struct {
	// PreferredService selects the initial service, zero means service 1.
	PreferredService int
	FontSize         string
	FontFamily       string
	BackgroundColor  string
	TextColor        string
	EdgeStyle        string
	// WindowOpacity overrides the window fill opacity, within [0,1] when set.
	WindowOpacity *float64
	Enabled       bool
}

// CaptionCallbacks are the collaborator sinks of a caption decoder, both optional.
type CaptionCallbacks struct {
	OnCaption func(c DecodedCaption)
	OnError   func(err error)
}

type Metrics struct {
	PacketsProcessed    uint64
	CaptionsDecoded     uint64
	Errors              uint64
	MalformedStructures uint64
	CurrentService      int
	Services            []int
}
