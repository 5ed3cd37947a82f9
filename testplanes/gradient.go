package testplanes

var gradientCases = []Case{
	ramp("ramp_8x8", 8, 8, 8),
	horizontal("horizontal_12bit", 70, 20, 12),
	diagonal("diagonal_9bit", 33, 31, 9),
	impulses(diagonal("diagonal_noisy_10bit", 50, 40, 10), 0.1, 11),
}

// ramp numbers the pixels 0, 1, 2, ... in row-major order.
func ramp(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	hi := int(c.MaxValue())
	for i := range c.Pix {
		c.Pix[i] = uint16(min(i, hi))
	}
	return c
}

// horizontal increases from 0 at the left edge to the maximum value at the
// right edge.
func horizontal(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	hi := int(c.MaxValue())
	for y := range height {
		for x := range width {
			c.Pix[y*width+x] = uint16(x * hi / (width - 1))
		}
	}
	return c
}

// diagonal increases from the top-left to the bottom-right corner.
func diagonal(name string, width, height, bitDepth int) Case {
	c := newPlane(name, width, height, bitDepth)
	hi := int(c.MaxValue())
	span := width + height - 2
	for y := range height {
		for x := range width {
			c.Pix[y*width+x] = uint16((x + y) * hi / span)
		}
	}
	return c
}
