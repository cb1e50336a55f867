package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   Event
		wantOK bool
	}{
		{
			name:   "quit",
			event:  &sdl.QuitEvent{Type: sdl.QUIT},
			want:   Event{Type: EventQuit},
			wantOK: true,
		},
		{
			name:   "resize",
			event:  &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 1024, Data2: 768},
			want:   Event{Type: EventWindowResize, Width: 1024, Height: 768},
			wantOK: true,
		},
		{
			name:  "window moved",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MOVED},
		},
		{
			name:   "key down",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
			want:   Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
			wantOK: true,
		},
		{
			name:  "key repeat",
			event: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
		},
		{
			name:   "drag",
			event:  &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, State: leftMask, XRel: 5, YRel: -3},
			want:   Event{Type: EventDrag, DX: 5, DY: -3},
			wantOK: true,
		},
		{
			name:  "hover",
			event: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 5, YRel: -3},
		},
		{
			name:   "wheel",
			event:  &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2},
			want:   Event{Type: EventWheel, Wheel: 2},
			wantOK: true,
		},
		{
			name:   "flipped wheel",
			event:  &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED},
			want:   Event{Type: EventWheel, Wheel: -1},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convert(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("convert() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("convert() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.events = append(in.events,
		Event{Type: EventKeyUp, Key: sdl.SCANCODE_ESCAPE},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
	)
	if !in.IsKeyPressed(sdl.SCANCODE_F12) {
		t.Error("F12 not reported as pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		t.Error("released key reported as pressed")
	}
}
