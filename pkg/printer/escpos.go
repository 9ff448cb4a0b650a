package printer

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	escByte = 0x1B
	gsByte  = 0x1D
	lfByte  = 0x0A
)

// Alignment values for SetAlign.
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size values for SetFontSize.
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width and height
)

// Document accumulates an ESC/POS byte stream. Methods chain; the width is
// the paper's character count per line (32 for 58mm, 48 for 80mm) and drives
// the layout of separators and key/value rows.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates an initialized document for the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{escByte, '@'}) // initialize printer
	return d
}

// LineFeed advances the paper one line.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(lfByte)
	return d
}

// FeedLines advances the paper n lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lfByte)
	}
	return d
}

// SetAlign sets the text alignment for subsequent lines.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{escByte, 'a', byte(align)})
	return d
}

// SetBold toggles emphasized text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{escByte, 'E', b})
	return d
}

// SetFontSize sets the character size (FontNormal or FontDouble).
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{gsByte, '!', size})
	return d
}

// Text writes one line.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lfByte)
	return d
}

// TextF writes one formatted line.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator writes a full-width rule of the given character.
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue writes a left-aligned key with a right-aligned value on one line,
// padded to the paper width.
func (d *Document) KeyValue(key, value string) *Document {
	return d.Text(padBetween(key, value, d.width))
}

// ItemLine writes a receipt line as "<qty>x <name>" with a right-aligned
// amount. Names too long for the paper are truncated rather than wrapped.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx %s", qty, name)
	if max := d.width - len(total) - 1; len(prefix) > max && max > 0 {
		prefix = prefix[:max]
	}
	return d.Text(padBetween(prefix, total, d.width))
}

// PartialCut cuts the paper, leaving the receipt attached at one point.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{gsByte, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func padBetween(left, right string, width int) string {
	spaces := width - len(left) - len(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}
