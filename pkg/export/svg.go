package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/ninehex/nhsim/pkg/model"
)

// SVGOptions configures the debug map renderer.
type SVGOptions struct {
	CellSize   int
	ShowLabels bool
	ShowLegend bool
	Title      string
}

// DefaultSVGOptions returns sensible defaults for a single-level render.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{CellSize: 10, ShowLabels: true, ShowLegend: true, Title: "Level"}
}

// cellColor maps a CellType to a fill color for the debug render.
func cellColor(t model.CellType) string {
	switch t {
	case model.CellRoom:
		return "#2d3748"
	case model.CellCorridor:
		return "#4a5568"
	case model.CellDoor, model.CellSecretDoor:
		return "#b7791f"
	case model.CellStaircaseUp, model.CellStaircaseDown, model.CellLadderUp, model.CellLadderDown:
		return "#68d391"
	case model.CellPool, model.CellMoat, model.CellWater:
		return "#3182ce"
	case model.CellLava:
		return "#e53e3e"
	case model.CellIce:
		return "#bee3f8"
	case model.CellAltar:
		return "#d6bcfa"
	case model.CellFountain:
		return "#63b3ed"
	case model.CellWall:
		return "#1a202c"
	default:
		return "#000000"
	}
}

// DebugSVG renders lvl's cell grid, rooms, and monster/object markers to
// an SVG diagnostic image: a top-down developer view, not a game
// front-end.
func DebugSVG(lvl *model.Level, opts SVGOptions) ([]byte, error) {
	if opts.CellSize <= 0 {
		opts.CellSize = 10
	}
	width := model.MapWidth * opts.CellSize
	height := model.MapHeight*opts.CellSize + 40

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#000000")

	if opts.Title != "" {
		canvas.Text(width/2, 20, opts.Title, "text-anchor:middle;font-size:16px;fill:#e2e8f0;font-family:monospace")
	}

	for x := 0; x < model.MapWidth; x++ {
		for y := 0; y < model.MapHeight; y++ {
			cell := lvl.Cells[x][y]
			if cell.Type == model.CellStone {
				continue
			}
			canvas.Rect(x*opts.CellSize, 40+y*opts.CellSize, opts.CellSize, opts.CellSize,
				fmt.Sprintf("fill:%s", cellColor(cell.Type)))
		}
	}

	for _, r := range lvl.Rooms {
		canvas.Rect(int(r.X1)*opts.CellSize, 40+int(r.Y1)*opts.CellSize,
			int(r.Width())*opts.CellSize, int(r.Height())*opts.CellSize,
			"fill:none;stroke:#718096;stroke-width:1")
	}

	for _, o := range lvl.Objects {
		p := o.FloorPos()
		cx := int(p.X)*opts.CellSize + opts.CellSize/2
		cy := 40 + int(p.Y)*opts.CellSize + opts.CellSize/2
		canvas.Circle(cx, cy, opts.CellSize/3, "fill:#ecc94b")
	}

	for _, m := range lvl.Monsters {
		if !m.Alive() {
			continue
		}
		cx := int(m.Pos.X)*opts.CellSize + opts.CellSize/2
		cy := 40 + int(m.Pos.Y)*opts.CellSize + opts.CellSize/2
		color := "#f56565"
		if m.Peaceful() {
			color = "#48bb78"
		}
		canvas.Circle(cx, cy, opts.CellSize/2, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", color))
		if opts.ShowLabels {
			canvas.Text(cx, cy+opts.CellSize, m.Name, "text-anchor:middle;font-size:8px;fill:#e2e8f0;font-family:monospace")
		}
	}

	if opts.ShowLegend {
		drawLegend(canvas, width, height)
	}

	canvas.End()
	return buf.Bytes(), nil
}

func drawLegend(canvas *svg.SVG, width, height int) {
	x := width - 160
	y := height - 90
	canvas.Rect(x-10, y-15, 160, 80, "fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.9")
	canvas.Text(x, y, "hostile", "font-size:10px;fill:#f56565")
	canvas.Circle(x-8, y-3, 4, "fill:#f56565")
	canvas.Text(x, y+18, "peaceful", "font-size:10px;fill:#48bb78")
	canvas.Circle(x-8, y+15, 4, "fill:#48bb78")
	canvas.Text(x, y+36, "object", "font-size:10px;fill:#ecc94b")
	canvas.Circle(x-8, y+33, 4, "fill:#ecc94b")
}

// SaveSVGToFile renders lvl and writes it to path.
func SaveSVGToFile(lvl *model.Level, path string, opts SVGOptions) error {
	data, err := DebugSVG(lvl, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
