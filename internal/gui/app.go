// Package gui renders a simulation in a raylib window: filled circles
// for bodies, alpha-faded line segments for trails.
package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbits/internal/config"
	"github.com/san-kum/orbits/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	screenSize = 1000
	targetFPS  = 60
)

var (
	colBg   = rl.NewColor(10, 10, 10, 255)
	colText = rl.NewColor(140, 140, 140, 255)
)

// Run opens the window and animates the configured scenario until the
// frame budget is exhausted or the window closes. Space pauses, R
// resets.
func Run(cfg *config.Config) {
	rl.InitWindow(screenSize, screenSize, "orbits")
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)

	simulator := sim.New(cfg.System(), cfg.TrailCapacity)
	t := 0.0
	frame := 0
	running := true

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			running = !running
		}
		if rl.IsKeyPressed(rl.KeyR) {
			simulator = sim.New(cfg.System(), cfg.TrailCapacity)
			t, frame = 0, 0
			running = true
		}

		if running && frame < cfg.Frames {
			simulator.Advance(t, cfg.Dt)
			t += cfg.Dt
			frame++
		}

		f := simulator.Frame()

		rl.BeginDrawing()
		rl.ClearBackground(colBg)

		for _, s := range f.Segments {
			rl.DrawLineV(
				project(s.From, cfg.Extent),
				project(s.To, cfg.Extent),
				rl.Fade(bodyColor(s.Color), float32(s.Alpha)),
			)
		}

		for _, p := range f.Points {
			radius := float32(math.Sqrt(p.Size))
			rl.DrawCircleV(project(p.Pos, cfg.Extent), radius, bodyColor(p.Color))
		}

		drawHUD(cfg, simulator, t, frame, running)

		rl.EndDrawing()
	}
}

func drawHUD(cfg *config.Config, simulator *sim.Simulator, t float64, frame int, running bool) {
	status := "running"
	if frame >= cfg.Frames {
		status = "finished"
	} else if !running {
		status = "paused"
	}

	rl.DrawText(fmt.Sprintf("%s · frame %d/%d · %.0f days · %s",
		cfg.Scenario, frame, cfg.Frames, t/86400, status), 14, 12, 18, colText)

	y := int32(40)
	for _, b := range simulator.System().Bodies {
		rl.DrawCircle(20, y, 5, bodyColor(b.Color))
		rl.DrawText(b.Name, 34, y-8, 16, colText)
		y += 24
	}

	rl.DrawText("space pause · r reset · esc quit", 14, screenSize-28, 16, colText)
}

// project maps world coordinates in [-extent, extent] to window pixels,
// y flipped so world-up is window-up.
func project(w r2.Vec, extent float64) rl.Vector2 {
	return rl.Vector2{
		X: float32((w.X + extent) / (2 * extent) * screenSize),
		Y: float32((1 - (w.Y+extent)/(2*extent)) * screenSize),
	}
}

func bodyColor(hex string) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.White
	}
	return rl.NewColor(uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), 255)
}
