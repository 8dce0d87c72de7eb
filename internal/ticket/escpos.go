// Package ticket renders kitchen tickets and customer receipts as raw
// printer jobs.
//
// The output is an opaque byte protocol, not text: control codes are
// single-byte escape sequences the thermal printers execute in-line, and
// every character of visible text must occupy exactly one byte on the wire.
// The kitchen/shake printers speak Star line mode, the receipt printers
// speak ESC/POS; the two command sets differ and are kept separate below.
package ticket

import "bytes"

// Star line-mode commands (kitchen and shake printers).
var (
	starInit        = []byte{0x1b, 0x40}
	starRed         = []byte{0x1b, 0x34}
	starBlack       = []byte{0x1b, 0x35}
	starAlignCenter = []byte{0x1b, 0x1d, 0x61, 0x01}
	starAlignLeft   = []byte{0x1b, 0x1d, 0x61, 0x00}
	starAlignRight  = []byte{0x1b, 0x1d, 0x61, 0x02}
	starBigFont     = []byte{0x1b, 0x57, 0x01, 0x1b, 0x68, 0x01}
	starCut         = []byte{0x1b, 0x64, 0x02}
)

// ESC/POS commands (receipt printers).
var (
	escInit         = []byte{0x1b, 0x40}
	escAlignCenter  = []byte{0x1b, 0x61, 0x01}
	escAlignLeft    = []byte{0x1b, 0x61, 0x00}
	escAlignRight   = []byte{0x1b, 0x61, 0x02}
	escBoldOn       = []byte{0x1b, 0x45, 0x01}
	escBoldOff      = []byte{0x1b, 0x45, 0x00}
	escDoubleHeight = []byte{0x1b, 0x21, 0x10}
	escNormal       = []byte{0x1b, 0x21, 0x00}
	escCutPartial   = []byte{0x1d, 0x56, 0x42, 0x00}
)

// DrawerKick returns the ESC/POS pulse that opens the cash drawer wired to
// the receipt printer's drawer port (pin 2, 50 ms on / 500 ms off).
func DrawerKick() []byte {
	return []byte{0x1b, 0x70, 0x00, 0x19, 0xfa}
}

// Builder accumulates one print job. Text is folded to Latin-1 so a rune
// never expands to a UTF-8 multi-byte sequence mid-job; anything outside
// the printable byte range becomes '?'.
type Builder struct {
	buf bytes.Buffer
}

// Raw appends a control sequence verbatim.
func (b *Builder) Raw(cmd []byte) *Builder {
	b.buf.Write(cmd)
	return b
}

// Text appends visible text, one byte per rune.
func (b *Builder) Text(s string) *Builder {
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		b.buf.WriteByte(byte(r))
	}
	return b
}

// Line appends text followed by a newline.
func (b *Builder) Line(s string) *Builder {
	return b.Text(s).Text("\n")
}

// Bytes returns the accumulated job.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}
