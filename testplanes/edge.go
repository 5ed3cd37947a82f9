package testplanes

var edgeCases = []Case{
	flat("constant", 16, 16, 8, 77),
	flat("constant_16bit", 20, 12, 16, 54321),
	checker("checker", 24, 24, 8, 1),
	checker("checker_wide", 40, 17, 10, 3),
	lines("vertical_lines", 64, 9, 8),
	border("bright_border", 30, 30, 12),
}

// checker alternates between 0 and the maximum value in square cells of the
// given size.
func checker(name string, width, height, bitDepth, cell int) Case {
	c := newPlane(name, width, height, bitDepth)
	hi := c.MaxValue()
	for y := range height {
		for x := range width {
			if (x/cell+y/cell)%2 == 1 {
				c.Pix[y*width+x] = hi
			}
		}
	}
	return c
}

// lines draws one-pixel vertical lines every third column.
func lines(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	hi := c.MaxValue()
	for y := range height {
		for x := 0; x < width; x += 3 {
			c.Pix[y*width+x] = hi
		}
	}
	return c
}

// border sets the outermost ring of pixels to the maximum value and the
// interior to a quarter of it. Edge replication makes the ring dominate
// the corners.
func border(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	hi := c.MaxValue()
	for y := range height {
		for x := range width {
			v := hi / 4
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				v = hi
			}
			c.Pix[y*width+x] = v
		}
	}
	return c
}
