package color

import "testing"

func TestAnsi256Standard16(t *testing.T) {
	tests := []struct {
		index int
		want  Color
	}{
		{0, RGB(0, 0, 0)},
		{1, RGB(205, 0, 0)},
		{7, RGB(229, 229, 229)},
		{15, RGB(255, 255, 255)},
	}
	for _, tt := range tests {
		got := Ansi256(uint8(tt.index))
		if got != tt.want {
			t.Errorf("Ansi256(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestAnsi256Cube(t *testing.T) {
	// Index 16 is the cube origin (0,0,0); index 231 is the top corner.
	if got := Ansi256(16); got != RGB(0, 0, 0) {
		t.Errorf("Ansi256(16) = %+v, want black", got)
	}
	if got := Ansi256(231); got != RGB(255, 255, 255) {
		t.Errorf("Ansi256(231) = %+v, want white", got)
	}
	// Index 196 is the canonical "bright red" in the cube.
	if got := Ansi256(196); got != RGB(255, 0, 0) {
		t.Errorf("Ansi256(196) = %+v, want pure red", got)
	}
}

func TestAnsi256Grayscale(t *testing.T) {
	if got := Ansi256(232); got != RGB(8, 8, 8) {
		t.Errorf("Ansi256(232) = %+v, want gray(8)", got)
	}
	if got := Ansi256(255); got != RGB(238, 238, 238) {
		t.Errorf("Ansi256(255) = %+v, want gray(238)", got)
	}
}

func TestRGBAImplementsColorColor(t *testing.T) {
	c := RGBA8(10, 20, 30, 128)
	r, g, b, a := c.RGBA()
	if r != 10*0x101 || g != 20*0x101 || b != 30*0x101 || a != 128*0x101 {
		t.Errorf("RGBA() = (%d,%d,%d,%d), unexpected scaling", r, g, b, a)
	}
}
