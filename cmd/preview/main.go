// Command preview renders a routed view in the terminal. It exists for
// eyeballing router output while developing: boxes are drawn from the
// view's node rectangles and every computed route is traced with line
// runes. Press q or Escape to quit.
//
// Usage:
//
//	preview [view.json]
//
// Without an argument a built-in sample view is shown.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/erland/pwa-modeller-sub011/core"
	"github.com/erland/pwa-modeller-sub011/diagram"
)

func main() {
	flag.Parse()

	view, err := loadView(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}

	router := diagram.NewRouter(nil)
	routes, err := router.RouteView(view)
	if err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}

	if err := run(view, routes); err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}
}

func loadView(path string) (*diagram.View, error) {
	if path == "" {
		return sampleView(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v diagram.View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse view %s: %w", path, err)
	}
	return &v, nil
}

func sampleView() *diagram.View {
	return &diagram.View{
		ID:       "sample",
		GridSize: 10,
		Nodes: []diagram.Node{
			{ID: "app", X: 20, Y: 20, W: 140, H: 60},
			{ID: "service", X: 260, Y: 20, W: 140, H: 60},
			{ID: "db", X: 260, Y: 160, W: 140, H: 60},
			{ID: "queue", X: 20, Y: 160, W: 140, H: 60},
		},
		Connections: []diagram.Connection{
			{ID: "c1", From: "app", To: "service"},
			{ID: "c2", From: "app", To: "db"},
			{ID: "c3", From: "queue", To: "db"},
			{ID: "c4", From: "queue", To: "service"},
		},
	}
}

func run(view *diagram.View, routes map[string][]core.Point) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault)
	draw(screen, view, routes)
	screen.Show()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Clear()
			draw(screen, view, routes)
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				return nil
			}
		}
	}
}

// Character cells are roughly twice as tall as wide, so Y is compressed
// twice as hard as X.
const (
	scaleX = 5.0
	scaleY = 10.0
)

func toCell(p core.Point) (int, int) {
	return int(math.Round(p.X / scaleX)), int(math.Round(p.Y / scaleY))
}

func draw(screen tcell.Screen, view *diagram.View, routes map[string][]core.Point) {
	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	boxStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for _, points := range routes {
		drawRoute(screen, points, lineStyle)
	}
	for _, n := range view.Nodes {
		drawBox(screen, n, boxStyle)
	}
}

func drawBox(screen tcell.Screen, n diagram.Node, style tcell.Style) {
	r := n.Rect()
	x0, y0 := toCell(core.Point{X: r.Left(), Y: r.Top()})
	x1, y1 := toCell(core.Point{X: r.Right(), Y: r.Bottom()})

	for x := x0 + 1; x < x1; x++ {
		screen.SetContent(x, y0, '─', nil, style)
		screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		screen.SetContent(x0, y, '│', nil, style)
		screen.SetContent(x1, y, '│', nil, style)
	}
	screen.SetContent(x0, y0, '┌', nil, style)
	screen.SetContent(x1, y0, '┐', nil, style)
	screen.SetContent(x0, y1, '└', nil, style)
	screen.SetContent(x1, y1, '┘', nil, style)

	label := []rune(n.ID)
	lx := (x0+x1)/2 - len(label)/2
	ly := (y0 + y1) / 2
	for i, ch := range label {
		screen.SetContent(lx+i, ly, ch, nil, style)
	}
}

func drawRoute(screen tcell.Screen, points []core.Point, style tcell.Style) {
	for i := 1; i < len(points); i++ {
		ax, ay := toCell(points[i-1])
		bx, by := toCell(points[i])
		if ay == by {
			step := 1
			if bx < ax {
				step = -1
			}
			for x := ax; x != bx+step; x += step {
				screen.SetContent(x, ay, '─', nil, style)
			}
		} else if ax == bx {
			step := 1
			if by < ay {
				step = -1
			}
			for y := ay; y != by+step; y += step {
				screen.SetContent(ax, y, '│', nil, style)
			}
		}
	}
	// Mark bends after the segments so corners read as corners.
	for i := 1; i < len(points)-1; i++ {
		x, y := toCell(points[i])
		screen.SetContent(x, y, '+', nil, style)
	}
}
