// Package grid models the simulated city as integer grid coordinates and
// plans the stepwise path a vehicle follows during a rental.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a grid cell of the simulated city.
type Point struct {
	X int
	Y int
}

func (p Point) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// ParsePoint parses a location in the "x,y" form used by the rental data.
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid location %q: want \"x,y\"", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Point{}, fmt.Errorf("invalid location %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Point{}, fmt.Errorf("invalid location %q: %w", s, err)
	}
	return Point{X: x, Y: y}, nil
}

// Distance returns the Manhattan distance between two points, which is the
// number of steps a vehicle travels between them.
func Distance(start, end Point) int {
	return abs(end.X-start.X) + abs(end.Y-start.Y)
}

// Plan produces the sequence of intermediate points from start to end.
// The walk exhausts the x-delta before the y-delta, so it is deterministic
// and never moves diagonally. It returns exactly Distance(start, end)
// points and the last one equals end.
func Plan(start, end Point) []Point {
	steps := Distance(start, end)
	if steps == 0 {
		return nil
	}

	dx := abs(end.X - start.X)
	dy := abs(end.Y - start.Y)
	stepX := sign(end.X - start.X)
	stepY := sign(end.Y - start.Y)

	path := make([]Point, 0, steps)
	x, y := start.X, start.Y
	for i := 0; i < steps; i++ {
		if dx > 0 {
			x += stepX
			dx--
		} else if dy > 0 {
			y += stepY
			dy--
		}
		path = append(path, Point{X: x, Y: y})
	}
	return path
}

// TimePerStep returns the dwell time per path step for a rental of the
// given duration magnitude, or 0 when the path is empty.
func TimePerStep(duration float64, steps int) float64 {
	if steps <= 0 {
		return 0
	}
	return duration / float64(steps)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
