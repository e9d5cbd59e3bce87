package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"torus-snake/game"
	"torus-snake/game/types"
	"torus-snake/render"
)

var (
	wallColor  = rl.NewColor(0x6B, 0x6B, 0x7A, 0xFF)
	snakeColor = rl.NewColor(0x4C, 0xAF, 0x50, 0xFF)
	foodColor  = rl.NewColor(0xE5, 0x39, 0x35, 0xFF)
	eyeColor   = rl.NewColor(0x10, 0x10, 0x10, 0xFF)
	deadColor  = rl.NewColor(0x9E, 0x9E, 0x9E, 0xFF)
)

var keyActions = []struct {
	key    int32
	action game.Action
}{
	{rl.KeyUp, game.ActionUp},
	{rl.KeyW, game.ActionUp},
	{rl.KeyDown, game.ActionDown},
	{rl.KeyS, game.ActionDown},
	{rl.KeyLeft, game.ActionLeft},
	{rl.KeyA, game.ActionLeft},
	{rl.KeyRight, game.ActionRight},
	{rl.KeyD, game.ActionRight},
	{rl.KeyR, game.ActionRestart},
	{rl.KeyQ, game.ActionQuit},
}

// Window is the raylib frontend. It blits cells of a sprite sheet onto the grid.
type Window struct {
	layout render.Layout
	sheet  rl.Texture2D
	log    *slog.Logger
}

// NewWindow opens the window and loads the sprite sheet. When spritePath is empty or
// missing, a plain sheet is drawn in memory instead.
func NewWindow(screenWidth, screenHeight int, grid types.Grid, spritePath string, logger *slog.Logger) (*Window, error) {
	layout := render.NewLayout(screenWidth, screenHeight, grid.Width, grid.Height)
	if layout.CellWidth == 0 || layout.CellHeight == 0 {
		return nil, fmt.Errorf("screen %dx%d too small for grid %dx%d", screenWidth, screenHeight, grid.Width, grid.Height)
	}

	rl.InitWindow(int32(screenWidth), int32(screenHeight), "Snake Game")
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("raylib: window not ready")
	}

	w := &Window{layout: layout, log: logger}
	if err := w.loadSheet(spritePath); err != nil {
		w.log.Warn("using generated sprite sheet", "path", spritePath, "error", err)
		w.sheet = generateSheet(layout)
	}

	return w, nil
}

func (w *Window) loadSheet(path string) error {
	if path == "" {
		return fmt.Errorf("no sprite sheet configured")
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return fmt.Errorf("raylib: cannot load texture %s", path)
	}
	w.sheet = tex
	return nil
}

func (w *Window) Close() {
	rl.UnloadTexture(w.sheet)
	rl.CloseWindow()
}

func (w *Window) Clear(c color.RGBA) {
	rl.BeginDrawing()
	rl.ClearBackground(c)
}

// DrawSprite rotates around the cell centre so the sprite stays inside its cell.
func (w *Window) DrawSprite(s render.Sprite, cell types.Point, rot types.Rotation) {
	cw, ch := float32(w.layout.CellWidth), float32(w.layout.CellHeight)

	r := w.layout.SourceIn(s, int(w.sheet.Width), int(w.sheet.Height))
	src := rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
	dst := rl.NewRectangle(float32(cell.X)*cw+cw/2, float32(cell.Y)*ch+ch/2, cw, ch)
	rl.DrawTexturePro(w.sheet, src, dst, rl.NewVector2(cw/2, ch/2), float32(rot.Degrees()), rl.White)
}

func (w *Window) DrawWall(cell types.Point) {
	cw, ch := int32(w.layout.CellWidth), int32(w.layout.CellHeight)
	rl.DrawRectangle(int32(cell.X)*cw, int32(cell.Y)*ch, cw, ch, wallColor)
}

func (w *Window) Present() {
	rl.EndDrawing()
}

func (w *Window) Poll() []game.Action {
	var actions []game.Action
	for _, k := range keyActions {
		if rl.IsKeyPressed(k.key) {
			actions = append(actions, k.action)
		}
	}
	return actions
}

func (w *Window) SetTitle(title string) {
	rl.SetWindowTitle(title)
}

func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// generateSheet draws the seven sprites in their unrotated pose: tail and straight
// open to the right, the corner joins up and right, heads face right.
func generateSheet(l render.Layout) rl.Texture2D {
	sw, sh := l.SheetSize()
	img := rl.GenImageColor(sw, sh, rl.Blank)

	cw, ch := int32(l.CellWidth), int32(l.CellHeight)
	bw, bh := max32(cw/2, 1), max32(ch/2, 1) // body thickness
	for _, s := range render.Sprites {
		x0 := int32(s.SheetIndex()) * cw
		cx, cy := x0+(cw-bw)/2, (ch-bh)/2

		switch s {
		case render.Food:
			rl.ImageDrawRectangle(img, x0+cw/4, ch/4, max32(cw/2, 1), max32(ch/2, 1), foodColor)
		case render.Tail:
			rl.ImageDrawRectangle(img, cx, cy+bh/4, x0+cw-cx, max32(bh/2, 1), snakeColor)
		case render.Straight:
			rl.ImageDrawRectangle(img, x0, cy, cw, bh, snakeColor)
		case render.Turn:
			rl.ImageDrawRectangle(img, cx, 0, bw, cy+bh, snakeColor)
			rl.ImageDrawRectangle(img, cx, cy, x0+cw-cx, bh, snakeColor)
		case render.Head, render.MouthOpenHead, render.DeadHead:
			body := snakeColor
			if s == render.DeadHead {
				body = deadColor
			}
			rl.ImageDrawRectangle(img, x0, cy-bh/4, cw-cw/8, bh+bh/2, body)
			rl.ImageDrawRectangle(img, x0+cw/2, cy, max32(cw/8, 1), max32(ch/8, 1), eyeColor)
			if s == render.MouthOpenHead {
				rl.ImageDrawRectangle(img, x0+cw-cw/4, cy+bh/4, cw/4, max32(bh/2, 1), rl.Blank)
			}
		}
	}

	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
