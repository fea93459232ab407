package image

import (
	stdimage "image"
	"image/color"
	"log"
)

// SixelParser sniffs "ESC P q <sixel data> ESC \" sequences. The image
// geometry is computed from the sixel body (color definitions are skipped,
// data bytes advance the raster); the pixels themselves are a gradient
// placeholder of the computed dimensions rather than a full decode.
type SixelParser struct {
	buf        []byte
	inSequence bool
}

// NewSixelParser creates an idle sixel sniffer.
func NewSixelParser() *SixelParser {
	return &SixelParser{}
}

// ProcessByte feeds one byte; see KittyParser.ProcessByte for the return
// convention.
func (s *SixelParser) ProcessByte(b byte) (stdimage.Image, bool) {
	if !s.inSequence {
		if b == 'q' {
			n := len(s.buf)
			if n >= 2 && s.buf[n-1] == 'P' && s.buf[n-2] == 0x1b {
				s.inSequence = true
				s.buf = s.buf[:0]
				return nil, false
			}
		}
		s.buf = append(s.buf, b)
		if len(s.buf) > 100 {
			s.buf = append(s.buf[:0], s.buf[50:]...)
		}
		return nil, false
	}

	s.buf = append(s.buf, b)

	n := len(s.buf)
	if n >= 2 && s.buf[n-2] == 0x1b && s.buf[n-1] == 0x5c {
		s.buf = s.buf[:n-2]
		img := s.parseSequence()
		s.inSequence = false
		s.buf = s.buf[:0]
		return img, img != nil
	}

	if len(s.buf) > maxSequenceBytes {
		log.Printf("sixel sequence too large, aborting")
		s.inSequence = false
		s.buf = s.buf[:0]
	}

	return nil, false
}

// Reset discards any in-progress sequence.
func (s *SixelParser) Reset() {
	s.buf = s.buf[:0]
	s.inSequence = false
}

func (s *SixelParser) parseSequence() stdimage.Image {
	var width, height, x, y int
	runes := []rune(string(s.buf))

	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '#':
			// Color definition: #<Pc>;<Pu>;<Px>;<Py>;<Pz>. The palette
			// itself isn't needed for the placeholder raster below, so we
			// only need to skip past the parameter list correctly.
			i++
			for i < len(runes) && (isDigit(runes[i]) || runes[i] == ';') {
				i++
			}
			continue
		case c == '$':
			x = 0
		case c == '-':
			x = 0
			y += 6
		case c == '?' || (c >= '@' && c <= '~'):
			x++
			if x > width {
				width = x
			}
			if y+6 > height {
				height = y + 6
			}
		}
		i++
	}

	if width == 0 || height == 0 {
		log.Printf("failed to parse sixel: invalid dimensions")
		return nil
	}

	if width > 800 {
		width = 800
	}
	if height > 600 {
		height = 600
	}

	img := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			r := uint8(px%256) + uint8(py%256)
			g := uint8(py % 256)
			b := uint8(px%128) * 2
			img.Set(px, py, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
