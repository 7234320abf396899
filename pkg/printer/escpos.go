package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes.
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment is an ESC a argument.
type Alignment byte

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Size is a GS ! argument: high nibble is width, low nibble is height.
type Size byte

const (
	SizeNormal Size = 0x00
	SizeDouble Size = 0x11
)

// DefaultWidth fits 58mm paper; 80mm paper takes 48.
const DefaultWidth = 32

// Document accumulates a receipt as an ESC/POS byte stream. Every method
// returns the document so calls can be chained.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document with the printer reset. A width of zero or
// less falls back to DefaultWidth.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	d := &Document{width: width}
	return d.cmd(ESC, '@')
}

func (d *Document) cmd(b ...byte) *Document {
	d.buf.Write(b)
	return d
}

// Align sets the alignment of the lines that follow.
func (d *Document) Align(a Alignment) *Document {
	return d.cmd(ESC, 'a', byte(a))
}

// Bold toggles emphasized printing.
func (d *Document) Bold(on bool) *Document {
	if on {
		return d.cmd(ESC, 'E', 1)
	}
	return d.cmd(ESC, 'E', 0)
}

// Size sets the character magnification.
func (d *Document) Size(s Size) *Document {
	return d.cmd(GS, '!', byte(s))
}

// Line prints s and ends the line.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	return d.cmd(LF)
}

// Linef prints a formatted line.
func (d *Document) Linef(format string, args ...any) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Blank feeds n empty lines.
func (d *Document) Blank(n int) *Document {
	d.buf.Write(bytes.Repeat([]byte{LF}, n))
	return d
}

// Rule prints ch across the full width.
func (d *Document) Rule(ch rune) *Document {
	return d.Line(strings.Repeat(string(ch), d.width))
}

// KeyValue prints key on the left and value flush right, as in
// "Remaining:                600.00".
func (d *Document) KeyValue(key, value string) *Document {
	return d.row(key, value)
}

// ItemLine prints "2x Card Printing          200.00". A name that would push
// the total off the line is shortened and marked with '~'.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	lead := fmt.Sprintf("%dx ", qty)
	room := d.width - utf8.RuneCountInString(lead) - utf8.RuneCountInString(total) - 1
	if room > 1 && utf8.RuneCountInString(name) > room {
		name = string([]rune(name)[:room-1]) + "~"
	}
	return d.row(lead+name, total)
}

// row pads between left and right so right ends at the last column.
// At least one space is kept when the pair is wider than the paper.
func (d *Document) row(left, right string) *Document {
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	return d.Line(left + strings.Repeat(" ", max(gap, 1)) + right)
}

// Cut feeds the paper clear of the head and cuts it, leaving a hinge when
// partial is set.
func (d *Document) Cut(partial bool) *Document {
	if partial {
		return d.cmd(GS, 'V', 1)
	}
	return d.cmd(GS, 'V', 0)
}

// Width is the line width in characters.
func (d *Document) Width() int {
	return d.width
}

// Bytes returns the stream built so far.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
