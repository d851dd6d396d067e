package controllers

import (
	"fmt"

	"github.com/flavioribeiro/donut-cc/internal/entities"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// ANSI-CTA-708-E 7.1.4 C0 code set
const (
	c0ETX = 0x03 // end of text
	c0BS  = 0x08 // backspace
	c0FF  = 0x0c // form feed
	c0CR  = 0x0d // carriage return
	c0HCR = 0x0e // horizontal carriage return
)

// ANSI-CTA-708-E 7.1.5 C1 code set
const (
	c1CW0 = 0x80 // set current window 0..7 (0x80-0x87)
	c1CLW = 0x88 // clear windows
	c1DSW = 0x89 // display windows
	c1HDW = 0x8a // hide windows
	c1TGW = 0x8b // toggle windows
	c1DLW = 0x8c // delete windows
	c1DLY = 0x8d // delay
	c1DLC = 0x8e // delay cancel
	c1RST = 0x8f // reset
	c1SPA = 0x90 // set pen attributes
	c1SPC = 0x91 // set pen color
	c1SPL = 0x92 // set pen location
	c1SWA = 0x97 // set window attributes
	c1DF0 = 0x98 // define window 0..7 (0x98-0x9f)
)

const musicNote = '♪'

// c1CommandLength returns the bytes a C1 command takes, opcode included.
func c1CommandLength(opcode byte) int {
	switch {
	case opcode >= c1CW0 && opcode < c1CLW:
		return 1
	case opcode >= c1CLW && opcode <= c1DLY:
		return 2
	case opcode == c1DLC, opcode == c1RST:
		return 1
	case opcode == c1SPA, opcode == c1SPL:
		return 3
	case opcode == c1SPC:
		return 4
	case opcode == c1SWA:
		return 5
	case opcode >= c1DF0:
		return 7
	}
	return 1
}

// CommandInterpreter decodes service blocks into the caption store.
type CommandInterpreter struct {
	store *CaptionStore
	l     *zap.SugaredLogger
}

func NewCommandInterpreter(store *CaptionStore, l *zap.SugaredLogger) *CommandInterpreter {
	return &CommandInterpreter{store: store, l: l}
}

// Interpret applies the commands and characters of a service block. A command
// whose parameters run past the block end stops interpretation, everything
// before it stays applied.
func (ci *CommandInterpreter) Interpret(block ServiceBlock) error {
	data := block.Data
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b <= 0x1f:
			ci.c0(block.Service, b)
			i++
		case b >= 0x80 && b <= 0x9f:
			n := c1CommandLength(b)
			if i+n > len(data) {
				return fmt.Errorf("%w: service %d command %#x needs %d bytes, %d left",
					entities.ErrTruncatedCommand, block.Service, b, n, len(data)-i)
			}
			ci.c1(block.Service, data[i:i+n])
			i += n
		default:
			ci.store.AppendChar(block.Service, character(b))
			i++
		}
	}
	return nil
}

// character maps G0 (0x20-0x7f) and G1 (0xa0-0xff) codes to runes.
func character(b byte) rune {
	switch {
	case b == 0x7f:
		return musicNote
	case b < 0x80:
		return rune(b)
	}
	return charmap.ISO8859_1.DecodeByte(b)
}

func (ci *CommandInterpreter) c0(service int, code byte) {
	switch code {
	case c0BS:
		ci.store.Backspace(service)
	case c0FF:
		ci.store.ClearText(service)
	case c0CR:
		ci.store.AppendNewline(service)
	case c0ETX, c0HCR:
	}
}

func (ci *CommandInterpreter) c1(service int, cmd []byte) {
	opcode := cmd[0]
	switch {
	case opcode >= c1CW0 && opcode < c1CLW:
		ci.store.SelectWindow(service, int(opcode-c1CW0))
	case opcode == c1CLW:
		// text is not tracked per window, every window is cleared
		ci.store.ClearText(service)
	case opcode == c1DSW:
		ci.store.changeVisibility(service, cmd[1], showWindows)
	case opcode == c1HDW:
		ci.store.changeVisibility(service, cmd[1], hideWindows)
	case opcode == c1TGW:
		ci.store.changeVisibility(service, cmd[1], toggleWindows)
	case opcode == c1DLW:
		ci.store.DeleteWindows(service, cmd[1])
	case opcode == c1DLY:
		ci.l.Debugw("ignoring caption delay",
			"service", service,
			"tenths", cmd[1],
		)
	case opcode == c1DLC:
	case opcode == c1RST:
		ci.store.ResetService(service)
	case opcode == c1SPA:
		ci.store.SetPenAttributes(service, penAttributes(cmd[1], cmd[2]))
	case opcode == c1SPC:
		ci.store.SetPenColor(service, penColor(cmd[1]), penColor(cmd[2]), penColor(cmd[3]&0x3f))
	case opcode == c1SPL:
		ci.l.Debugw("ignoring pen location",
			"service", service,
			"row", cmd[1]&0x0f,
			"column", cmd[2]&0x3f,
		)
	case opcode == c1SWA:
		ci.l.Debugw("ignoring window attributes",
			"service", service,
			"attributes", cmd[1:],
		)
	case opcode >= c1DF0:
		ci.store.DefineWindow(service, windowDefinition(int(opcode-c1DF0), cmd[1:]))
	default:
		ci.l.Debugw("skipping unsupported command",
			"service", service,
			"opcode", opcode,
		)
	}
}

// penAttributes decodes the SPA parameters:
// tag(4) offset(2) size(2), italics(1) underline(1) edge(3) font(3).
func penAttributes(p1, p2 byte) entities.PenAttributes {
	return entities.PenAttributes{
		Size:      penSize(p1 & 0x03),
		Offset:    textOffset((p1 >> 2) & 0x03),
		Tag:       int(p1 >> 4),
		Italics:   p2&0x80 != 0,
		Underline: p2&0x40 != 0,
		Edge:      edgeType((p2 >> 3) & 0x07),
		Font:      entities.FontStyle(p2 & 0x07),
	}
}

func penSize(v byte) entities.PenSize {
	if v > byte(entities.PenSizeLarge) {
		return entities.PenSizeStandard
	}
	return entities.PenSize(v)
}

func textOffset(v byte) entities.TextOffset {
	if v > byte(entities.TextOffsetSuperscript) {
		return entities.TextOffsetNormal
	}
	return entities.TextOffset(v)
}

func edgeType(v byte) entities.EdgeType {
	switch v {
	case 1:
		return entities.EdgeRaised
	case 2:
		return entities.EdgeDepressed
	case 3:
		return entities.EdgeUniform
	case 4, 5:
		// left and right drop shadow
		return entities.EdgeDropShadow
	}
	return entities.EdgeNone
}

// penColor decodes opacity(2) red(2) green(2) blue(2), scaling each color
// component to 8 bits.
func penColor(v byte) entities.PenColor {
	return entities.PenColor{
		Opacity: entities.Opacity(v >> 6),
		Red:     ((v >> 4) & 0x03) * 85,
		Green:   ((v >> 2) & 0x03) * 85,
		Blue:    (v & 0x03) * 85,
	}
}

// windowDefinition decodes the 6 DFx parameters.
func windowDefinition(id int, p []byte) entities.CaptionWindow {
	return entities.CaptionWindow{
		ID:                  id,
		Visible:             p[0]&0x20 != 0,
		RowLock:             p[0]&0x10 != 0,
		ColumnLock:          p[0]&0x08 != 0,
		Priority:            int(p[0] & 0x07),
		RelativePositioning: p[1]&0x80 != 0,
		AnchorVertical:      int(p[1] & 0x7f),
		AnchorHorizontal:    int(p[2]),
		AnchorPoint:         int(p[3] >> 4),
		RowCount:            int(p[3]&0x0f) + 1,
		ColumnCount:         int(p[4]&0x3f) + 1,
		WindowStyle:         int((p[5] >> 3) & 0x07),
		PenStyle:            int(p[5] & 0x07),
	}
}
