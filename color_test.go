package bmpkit

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "red", want: Color{255, 0, 0}},
		{in: "  Yellow ", want: Color{255, 255, 0}},
		{in: "cornflowerblue", want: Color{100, 149, 237}},
		{in: "green", want: Color{0, 128, 0}},
		{in: "#00ff00", want: Color{0, 255, 0}},
		{in: "#F80", want: Color{255, 136, 0}},
		{in: "10, 20, 30", want: Color{10, 20, 30}},
		{in: "-5,300,128", want: Color{0, 255, 128}},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#ggg", wantErr: true},
		{in: "1,2", wantErr: true},
		{in: "1,x,3", wantErr: true},
		{in: "notacolour", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrBadColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGBClamps(t *testing.T) {
	if got := RGB(-1, 256, 1000); got != (Color{0, 255, 255}) {
		t.Errorf("RGB(-1, 256, 1000) = %v", got)
	}
	if got := RGB(1, 2, 3); got != (Color{1, 2, 3}) {
		t.Errorf("RGB(1, 2, 3) = %v", got)
	}
}

func TestColorString(t *testing.T) {
	if got := RGB(255, 136, 0).String(); got != "#ff8800" {
		t.Errorf("String() = %q, want #ff8800", got)
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{0x12, 0x80, 0xff}.RGBA()
	if r != 0x1212 || g != 0x8080 || b != 0xffff || a != 0xffff {
		t.Errorf("RGBA() = %#x %#x %#x %#x", r, g, b, a)
	}
}

func TestColorModel(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"same type", Color{1, 2, 3}, Color{1, 2, 3}},
		{"opaque rgba", color.RGBA{R: 9, G: 8, B: 7, A: 255}, Color{9, 8, 7}},
		{"gray", color.Gray{Y: 100}, Color{100, 100, 100}},
		{"transparent", color.RGBA{}, Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorModel.Convert(tt.in); got != tt.want {
				t.Errorf("Convert(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
