package caves

import (
	"fmt"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/core"
)

// hudHeight is the number of status rows above the cave.
const hudHeight = 2

// Render draws the status line and the part of the cave around the player.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if s.cave == nil {
		msg := "no cave"
		if s.err != nil {
			msg = s.err.Error()
		}
		renderOverlay(dst, "Cannot play this cave", msg)
		return
	}
	c := s.cave

	s.renderHUD(dst)

	viewW, viewH := dst.Width(), dst.Height()-hudHeight
	s.scrollX = core.Follow(s.scrollX, c.PlayerX, viewW, c.W, scrollMargin)
	s.scrollY = core.Follow(s.scrollY, c.PlayerY, viewH, c.H, scrollMargin)
	for y := 0; y < min(viewH, c.H); y++ {
		for x := 0; x < min(viewW, c.W); x++ {
			dst.SetCell(x, y+hudHeight, Glyph(c.Get(s.scrollX+x, s.scrollY+y)))
		}
	}

	switch {
	case s.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case s.finished == nil:
	case c.PlayerState == cave.PlayerExited:
		renderOverlay(dst, "Cave complete!", fmt.Sprintf("Score: %d  R: play again", c.Score))
	case c.PlayerState == cave.PlayerTimeout:
		renderOverlay(dst, "Out of time", "Press R to restart")
	default:
		renderOverlay(dst, "You died", "Press R to restart")
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	c := s.cave
	color := core.ColorYellow
	if c.GateOpenFlash > 0 {
		color = core.ColorBrightWhite
	}
	needed := fmt.Sprintf("%02d", c.DiamondsNeeded)
	if c.GateOpen {
		needed = "**"
	}
	// The cave name goes last so a narrow terminal clips it first.
	top := fmt.Sprintf(" Score %06d  Level %d  %s", c.Score, c.Level+1, s.def.Name)
	bottom := fmt.Sprintf(" Diamonds %02d/%s  Value %d  Time %03d",
		c.DiamondsCollected, needed, c.DiamondValueNow, c.TimeSeconds())
	dst.DrawTextColor(0, 0, top, core.ColorWhite)
	dst.DrawTextColor(0, 1, bottom, color)
}

func renderOverlay(dst *core.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	h := 4
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box)
	dst.DrawTextColor(box.X+(w-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawText(box.X+(w-len([]rune(subtitle)))/2, box.Y+2, subtitle)
}
