// Package image implements the Kitty graphics and Sixel byte-stream
// sniffers that run alongside the VT parser, plus the TerminalImage placed
// into the grid at the cursor's position.
package image

import (
	"bytes"
	"encoding/base64"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"

	_ "golang.org/x/image/webp"
)

// maxSequenceBytes bounds how large a single Kitty/Sixel sequence may grow
// before the sniffer gives up and resets.
const maxSequenceBytes = 10 * 1024 * 1024

// TerminalImage is a decoded image anchored at a grid position, spanning a
// rectangle of cells.
type TerminalImage struct {
	Image       stdimage.Image
	Row, Col    int
	WidthCells  int
	HeightCells int
}

// WidthPixels returns the decoded image's pixel width.
func (t TerminalImage) WidthPixels() int { return t.Image.Bounds().Dx() }

// HeightPixels returns the decoded image's pixel height.
func (t TerminalImage) HeightPixels() int { return t.Image.Bounds().Dy() }

// KittyParser sniffs "ESC _G <control data> ; <base64 payload> ESC \" out of
// a raw PTY byte stream. It does not participate in VT dispatch; it watches
// the same bytes the VT parser sees, running alongside (not inside) the
// escape-sequence state machine.
type KittyParser struct {
	buf        []byte
	inSequence bool
}

// NewKittyParser creates an idle Kitty graphics sniffer.
func NewKittyParser() *KittyParser {
	return &KittyParser{}
}

// ProcessByte feeds one byte. It returns a decoded image and true once a
// complete "ESC _G ... ESC \" sequence has been seen and its payload decodes.
func (k *KittyParser) ProcessByte(b byte) (stdimage.Image, bool) {
	if !k.inSequence {
		if b == 'G' && len(k.buf) >= 2 && k.buf[len(k.buf)-1] == '_' && k.buf[len(k.buf)-2] == 0x1b {
			k.inSequence = true
			k.buf = k.buf[:0]
			return nil, false
		}
		k.buf = append(k.buf, b)
		if len(k.buf) > 100 {
			k.buf = append(k.buf[:0], k.buf[50:]...)
		}
		return nil, false
	}

	k.buf = append(k.buf, b)

	n := len(k.buf)
	if n >= 2 && k.buf[n-2] == 0x1b && k.buf[n-1] == 0x5c {
		k.buf = k.buf[:n-2]
		img := k.parseSequence()
		k.inSequence = false
		k.buf = k.buf[:0]
		return img, img != nil
	}

	if len(k.buf) > maxSequenceBytes {
		log.Printf("kitty image sequence too large, aborting")
		k.inSequence = false
		k.buf = k.buf[:0]
	}

	return nil, false
}

func (k *KittyParser) parseSequence() stdimage.Image {
	idx := bytes.IndexByte(k.buf, ';')
	if idx < 0 {
		log.Printf("invalid kitty image format: no payload separator")
		return nil
	}
	payload := bytes.TrimSpace(k.buf[idx+1:])

	data, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		log.Printf("failed to decode kitty image base64: %v", err)
		return nil
	}

	img, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("failed to load kitty image: %v", err)
		return nil
	}
	return img
}

// Reset discards any in-progress sequence.
func (k *KittyParser) Reset() {
	k.buf = k.buf[:0]
	k.inSequence = false
}
