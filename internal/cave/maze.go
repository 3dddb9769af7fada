package cave

// Mazes are generated on a logical grid of booleans (true is path). Rooms
// sit at even coordinates; the odd cells between two rooms are either a
// carved passage or a wall.

// maze direction bits, in the order the carver tries them
const (
	mazeUp = iota
	mazeDown
	mazeLeft
	mazeRight
)

type mazeFrame struct {
	x, y    int
	dirmask int
}

// carveMaze runs a depth-first backtracker from x, y. The explicit stack
// visits rooms and draws random numbers in the same order a recursive carver
// would, so a seed always yields the same maze.
func carveMaze(r *Random, maze [][]bool, w, h, x, y, horiz int) {
	maze[y][x] = true
	stack := []mazeFrame{{x, y, 15}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.dirmask == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		dir := mazeUp
		if r.IntRange(0, 100) < horiz {
			dir = mazeLeft
		}
		// fall back to the other axis once one is exhausted
		if dir == mazeLeft && f.dirmask&12 == 0 {
			dir = mazeUp
		} else if dir == mazeUp && f.dirmask&3 == 0 {
			dir = mazeLeft
		}
		dir += r.IntRange(0, 2)
		if f.dirmask&(1<<dir) == 0 {
			continue
		}
		f.dirmask &^= 1 << dir

		cx, cy := f.x, f.y
		nx, ny := cx, cy
		switch dir {
		case mazeUp:
			if cy < 2 || maze[cy-2][cx] {
				continue
			}
			ny = cy - 2
		case mazeDown:
			if cy >= h-2 || maze[cy+2][cx] {
				continue
			}
			ny = cy + 2
		case mazeLeft:
			if cx < 2 || maze[cy][cx-2] {
				continue
			}
			nx = cx - 2
		case mazeRight:
			if cx >= w-2 || maze[cy][cx+2] {
				continue
			}
			nx = cx + 2
		}
		maze[(cy+ny)/2][(cx+nx)/2] = true
		maze[ny][nx] = true
		stack = append(stack, mazeFrame{nx, ny, 15})
	}
}

// braidMaze opens one random closed side of every dead end, so that no
// room has only one way out.
func braidMaze(r *Random, maze [][]bool, w, h int) {
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			closed := 0
			var dirs []Direction
			if x < 1 || !maze[y][x-1] {
				closed++
				if x > 0 {
					dirs = append(dirs, Left)
				}
			}
			if y < 1 || !maze[y-1][x] {
				closed++
				if y > 0 {
					dirs = append(dirs, Up)
				}
			}
			if x >= w-1 || !maze[y][x+1] {
				closed++
				if x < w-1 {
					dirs = append(dirs, Right)
				}
			}
			if y >= h-1 || !maze[y+1][x] {
				closed++
				if y < h-1 {
					dirs = append(dirs, Down)
				}
			}
			if closed == 3 && len(dirs) > 0 {
				d := dirs[r.IntRange(0, len(dirs))]
				maze[y+d.DY()][x+d.DX()] = true
			}
		}
	}
}

// unicursalMaze turns a maze into a single corridor that runs along both
// sides of every passage. The result is (2w-1)×(2h-1).
func unicursalMaze(maze [][]bool, w, h int) ([][]bool, int, int) {
	uw, uh := w*2-1, h*2-1
	u := newBoolGrid(uw, uh)
	set := func(x, y int) {
		if x >= 0 && y >= 0 && x < uw && y < uh {
			u[y][x] = true
		}
	}
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			if !maze[y][x] {
				continue
			}
			set(x*2, y*2)
			set(x*2+2, y*2)
			set(x*2, y*2+2)
			set(x*2+2, y*2+2)
			if x < 1 || !maze[y][x-1] {
				set(x*2, y*2+1)
			}
			if y < 1 || !maze[y-1][x] {
				set(x*2+1, y*2)
			}
			if x >= w-1 || !maze[y][x+1] {
				set(x*2+2, y*2+1)
			}
			if y >= h-1 || !maze[y+1][x] {
				set(x*2+1, y*2+2)
			}
		}
	}
	return u, uw, uh
}

func newBoolGrid(w, h int) [][]bool {
	g := make([][]bool, h)
	for y := range g {
		g[y] = make([]bool, w)
	}
	return g
}

// generateMaze builds the logical maze for a w×h grid of cells.
func generateMaze(r *Random, w, h, horiz int, braid bool) [][]bool {
	maze := newBoolGrid(w, h)
	if w < 1 || h < 1 {
		return maze
	}
	sx := r.IntRange(0, (w+1)/2) * 2
	sy := r.IntRange(0, (h+1)/2) * 2
	carveMaze(r, maze, w, h, sx, sy, horiz)
	if braid {
		braidMaze(r, maze, w, h)
	}
	return maze
}

// drawMaze sizes the logical maze to the object's rectangle and blits it
// with the requested wall and path widths. Space left over at the right or
// bottom is filled with wall.
func (c *Cave) drawMaze(o *Object, idx int) {
	x1, x2 := ordered(o.X1, o.X2)
	y1, y2 := ordered(o.Y1, o.Y2)
	wall := max(o.WallWidth, 1)
	path := max(o.PathWidth, 1)

	// n passages take n*path + (n-1)*wall cells
	w := (x2 - x1 + 1 + wall) / (path + wall)
	h := (y2 - y1 + 1 + wall) / (path + wall)
	if o.Kind == ObjMazeUnicursal {
		w = w / 2 * 2
		h = h / 2 * 2
	} else {
		w = 2*(w-1) + 1
		h = 2*(h-1) + 1
	}

	var maze [][]bool
	if w >= 1 && h >= 1 {
		r := NewRandom(c.objectSeed(o))
		maze = generateMaze(r, w, h, o.HorizPercent, o.Kind == ObjMazeBraid)
		if o.Kind == ObjMazeUnicursal {
			maze, w, h = unicursalMaze(maze, w, h)
		}
	} else {
		w, h = 0, 0
	}

	yy := y1
	for y := 0; y < h; y++ {
		rowWidth := wall
		if y%2 == 0 {
			rowWidth = path
		}
		for i := 0; i < rowWidth; i++ {
			xx := x1
			for x := 0; x < w; x++ {
				colWidth := wall
				if x%2 == 0 {
					colWidth = path
				}
				e := o.Elem
				if maze[y][x] {
					e = o.Fill
				}
				for j := 0; j < colWidth; j++ {
					c.drawStore(xx, yy, e, idx)
					xx++
				}
			}
			for ; xx <= x2; xx++ {
				c.drawStore(xx, yy, o.Elem, idx)
			}
			yy++
		}
	}
	for ; yy <= y2; yy++ {
		for xx := x1; xx <= x2; xx++ {
			c.drawStore(xx, yy, o.Elem, idx)
		}
	}
}
