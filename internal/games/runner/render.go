package runner

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/lane-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar     = '●'
	DeadChar       = '✖'
	ShadowChar     = '▁'
	PickupChar     = '+'
	DefaultGlyph   = '▓'
	LeftEdgeChar   = '╱'
	RightEdgeChar  = '╲'
	DividerChar    = '┊'
	HorizonChar    = '─'
	minRenderW     = 30
	minRenderH     = 12
	farScale       = 0.3 // Track width at the horizon relative to the player row
	behindRowDepth = 1.5 // Z covered by each row below the player
)

const helpText = "←/→ lane  space jump  p pause  r restart  b back  q quit"

// view maps track coordinates to screen cells for one frame.
type view struct {
	w, h      int
	cx        int
	trackTop  int
	playerRow int
	halfW     float64
	edge      float64
	viewDist  float64
}

func (g *Game) newView(dst *core.Screen) view {
	w, h := dst.Width(), dst.Height()
	v := view{
		w:         w,
		h:         h,
		cx:        w / 2,
		trackTop:  2,
		playerRow: h - 4,
		halfW:     math.Min(float64(w-4)/2, 36),
		viewDist:  g.cfg.World.Lookahead,
	}

	lanes := g.cfg.Player.Lanes
	gap := 2.0
	if len(lanes) > 1 {
		gap = (lanes[len(lanes)-1] - lanes[0]) / float64(len(lanes)-1)
	}
	maxAbs := 0.0
	for _, off := range lanes {
		maxAbs = math.Max(maxAbs, math.Abs(off))
	}
	v.edge = maxAbs + gap/2
	return v
}

// depth returns the Z distance ahead of the player shown on row y.
// Rows above the player are spaced quadratically to fake perspective.
func (v view) depth(y int) float64 {
	if y >= v.playerRow {
		return -float64(y-v.playerRow) * behindRowDepth
	}
	t := float64(v.playerRow-y) / float64(v.playerRow-v.trackTop)
	return v.viewDist * t * t
}

// row returns the screen row for a Z distance ahead of the player.
func (v view) row(d float64) int {
	if d < 0 {
		return v.playerRow + int(math.Round(-d/behindRowDepth))
	}
	t := math.Sqrt(d / v.viewDist)
	return v.playerRow - int(math.Round(t*float64(v.playerRow-v.trackTop)))
}

// scale returns the track width factor for row y.
func (v view) scale(y int) float64 {
	if y >= v.playerRow {
		return 1
	}
	t := float64(v.playerRow-y) / float64(v.playerRow-v.trackTop)
	return 1 - (1-farScale)*t
}

// col returns the screen column of a lateral offset on row y.
func (v view) col(offset float64, y int) int {
	return v.cx + int(math.Round(offset/v.edge*v.halfW*v.scale(y)))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minRenderW || dst.Height() < minRenderH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	v := g.newView(dst)
	g.drawTrack(dst, v)
	g.drawItems(dst, v)
	g.drawPlayer(dst, v)
	g.drawHUD(dst)
	dst.DrawTextColored((v.w-utf8.RuneCountInString(helpText))/2, v.h-1, helpText, core.ColorGray)

	if g.clock.IsPaused() {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.hud.GameOverVisible() {
		sub := fmt.Sprintf("Score: %d  |  Press R to restart", g.clock.Score())
		if left, ok := g.clock.RestartIn(); ok {
			sub = fmt.Sprintf("Score: %d  |  Restarting in %.0fs", g.clock.Score(), math.Ceil(left))
		}
		g.drawCenteredMessage(dst, "GAME OVER", sub)
	}
}

// drawTrack draws the horizon, track edges and scrolling lane dividers.
func (g *Game) drawTrack(dst *core.Screen, v view) {
	left, right := v.col(-v.edge, v.trackTop), v.col(v.edge, v.trackTop)
	dst.DrawHLine(left, v.trackTop-1, right-left+1, HorizonChar, core.ColorGray)

	lanes := g.cfg.Player.Lanes
	pz := g.player.Z()
	for y := v.trackTop; y < v.h-1; y++ {
		dst.SetColored(v.col(-v.edge, y), y, LeftEdgeChar, core.ColorWhite)
		dst.SetColored(v.col(v.edge, y), y, RightEdgeChar, core.ColorWhite)

		// Dashes move toward the player as Z grows.
		band := int(math.Floor((pz + v.depth(y)) / 2))
		if ((band%2)+2)%2 != 0 {
			continue
		}
		for i := 1; i < len(lanes); i++ {
			mid := (lanes[i-1] + lanes[i]) / 2
			dst.SetColored(v.col(mid, y), y, DividerChar, core.ColorGray)
		}
	}
}

// drawItems draws obstacles and pickups from far to near.
func (g *Game) drawItems(dst *core.Screen, v view) {
	lanes := g.cfg.Player.Lanes
	pz := g.player.Z()
	segs := g.world.Segments()
	laneW := 2.0
	if len(lanes) > 1 {
		laneW = (lanes[1] - lanes[0]) / v.edge * v.halfW
	}
	behind := -float64(v.h-2-v.playerRow) * behindRowDepth

	for si := len(segs) - 1; si >= 0; si-- {
		seg := segs[si]
		for _, o := range seg.Obstacles {
			d := o.Z - pz
			if d > v.viewDist || d < behind {
				continue
			}
			y := v.row(d)
			glyph := DefaultGlyph
			if r, _ := utf8.DecodeRuneInString(o.Type.Glyph); r != utf8.RuneError {
				glyph = r
			}
			color := core.ColorYellow
			if o.Type.Damage >= 20 {
				color = core.ColorRed
			}
			width := max(1, int(laneW*v.scale(y)*0.6))
			x := v.col(lanes[o.Lane], y) - width/2
			dst.DrawHLine(x, y, width, glyph, color)
		}
		for _, p := range seg.Pickups {
			d := p.Z - pz
			if d > v.viewDist || d < behind {
				continue
			}
			y := v.row(d)
			dst.SetColored(v.col(lanes[p.Lane], y), y, PickupChar, core.ColorBrightGreen)
		}
	}
}

// drawPlayer draws the runner, raised by its jump height, with a shadow
// on the ground while airborne.
func (g *Game) drawPlayer(dst *core.Screen, v view) {
	x := v.col(g.player.X(), v.playerRow)
	if !g.player.Alive() {
		dst.SetColored(x, v.playerRow, DeadChar, core.ColorBrightRed)
		return
	}

	lift := int(math.Round(g.player.Y()))
	if lift > 0 {
		dst.SetColored(x, v.playerRow, ShadowChar, core.ColorGray)
	}
	color := core.ColorBrightCyan
	if g.player.Airborne() {
		color = core.ColorBrightWhite
	}
	dst.SetColored(x, v.playerRow-lift, PlayerChar, color)
}

// drawHUD draws health, score and speed on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	lines := g.hud.Lines()
	w := dst.Width()

	healthColor := core.ColorGreen
	switch r := g.hud.HealthRatio(); {
	case r <= 0.25:
		healthColor = core.ColorRed
	case r <= 0.5:
		healthColor = core.ColorOrange
	}
	dst.DrawTextColored(2, 0, " "+lines[0]+" ", healthColor)

	score := " " + lines[1] + " "
	dst.DrawTextColored((w-utf8.RuneCountInString(score))/2, 0, score, core.ColorBrightYellow)

	speed := " " + lines[2] + " "
	dst.DrawTextColored(w-utf8.RuneCountInString(speed)-2, 0, speed, core.ColorCyan)

	if g.difficulty != "" {
		dst.DrawTextColored(2, 1, string(g.difficulty), core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := utf8.RuneCountInString(title)
	subW := utf8.RuneCountInString(subtitle)

	boxW := max(titleW, subW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle)
}
