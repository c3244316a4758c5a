package pagectx

import "testing"

func TestQuadrant(t *testing.T) {
	viewport := Size{Width: 1280, Height: 800}

	tests := []struct {
		name string
		box  Rect
		want string
	}{
		{
			name: "top left corner",
			box:  Rect{X: 10, Y: 10, Width: 100, Height: 50},
			want: TopLeft,
		},
		{
			name: "top right corner",
			box:  Rect{X: 1100, Y: 20, Width: 120, Height: 40},
			want: TopRight,
		},
		{
			name: "bottom left corner",
			box:  Rect{X: 0, Y: 700, Width: 200, Height: 80},
			want: BottomLeft,
		},
		{
			name: "bottom right corner",
			box:  Rect{X: 900, Y: 600, Width: 300, Height: 150},
			want: BottomRight,
		},
		{
			name: "center lands bottom right",
			box:  Rect{X: 640, Y: 400, Width: 0, Height: 0},
			want: BottomRight,
		},
		{
			name: "wide element classified by center",
			box:  Rect{X: 0, Y: 0, Width: 1400, Height: 100},
			want: TopRight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quadrant(tt.box, viewport)
			if got != tt.want {
				t.Errorf("Quadrant() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuadrantDeterministic(t *testing.T) {
	box := Rect{X: 300, Y: 500, Width: 50, Height: 50}
	viewport := Size{Width: 1024, Height: 768}

	first := Quadrant(box, viewport)
	for i := 0; i < 10; i++ {
		if got := Quadrant(box, viewport); got != first {
			t.Fatalf("Quadrant() not deterministic: %q then %q", first, got)
		}
	}
}
