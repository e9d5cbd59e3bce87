package render

import "fmt"

// Sprite names one cell of the sprite sheet.
type Sprite int

const (
	Food Sprite = iota
	Tail
	Turn
	DeadHead
	MouthOpenHead
	Straight
	Head
)

// SheetCells is the number of square cells in a sprite sheet, left to right.
const SheetCells = 7

// sheetIndex fixes the position of every sprite on the sheet. Existing sprite
// assets depend on this order.
var sheetIndex = map[Sprite]int{
	Food:          0,
	Tail:          1,
	Turn:          2,
	DeadHead:      3,
	MouthOpenHead: 4,
	Straight:      5,
	Head:          6,
}

var spriteNames = map[Sprite]string{
	Food:          "food",
	Tail:          "tail",
	Turn:          "turn",
	DeadHead:      "dead_head",
	MouthOpenHead: "mouth_open_head",
	Straight:      "straight",
	Head:          "head",
}

// Sprites lists the palette in sheet order
var Sprites = []Sprite{Food, Tail, Turn, DeadHead, MouthOpenHead, Straight, Head}

// SheetIndex returns the sheet cell of s, counted from the left.
func (s Sprite) SheetIndex() int {
	i, ok := sheetIndex[s]
	if !ok {
		panic(fmt.Sprintf("render: unknown sprite %d", int(s)))
	}
	return i
}

func (s Sprite) String() string {
	if name, ok := spriteNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sprite(%d)", int(s))
}

// Rect is a pixel rectangle
type Rect struct {
	X, Y, W, H int
}

// Layout maps grid cells and sprites to pixels.
type Layout struct {
	CellWidth  int
	CellHeight int
}

// NewLayout sizes a cell as screen/grid on each axis.
func NewLayout(screenWidth, screenHeight, gridWidth, gridHeight int) Layout {
	return Layout{
		CellWidth:  screenWidth / gridWidth,
		CellHeight: screenHeight / gridHeight,
	}
}

// Source is the rectangle of s on the sprite sheet
func (l Layout) Source(s Sprite) Rect {
	return Rect{X: s.SheetIndex() * l.CellWidth, Y: 0, W: l.CellWidth, H: l.CellHeight}
}

// SourceIn is the rectangle of s on a sheet of the given pixel size. A sheet drawn for
// this layout uses Source as is; any other sheet is split into SheetCells equal columns.
func (l Layout) SourceIn(s Sprite, sheetWidth, sheetHeight int) Rect {
	if w, h := l.SheetSize(); w == sheetWidth && h == sheetHeight {
		return l.Source(s)
	}
	cw := sheetWidth / SheetCells
	return Rect{X: s.SheetIndex() * cw, Y: 0, W: cw, H: sheetHeight}
}

// SheetSize is the pixel size of a sheet matching this layout
func (l Layout) SheetSize() (w, h int) {
	return SheetCells * l.CellWidth, l.CellHeight
}
