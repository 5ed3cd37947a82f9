package testplanes

var noiseCases = []Case{
	uniform("uniform_8bit", 48, 40, 8, 1),
	uniform("uniform_9bit", 40, 33, 9, 2),
	uniform("uniform_10bit", 37, 29, 10, 3),
	uniform("uniform_12bit", 32, 32, 12, 4),
	uniform("uniform_14bit", 24, 21, 14, 5),
	uniform("uniform_16bit", 31, 17, 16, 6),
	lowEntropy("few_levels", 45, 45, 8, 7),
	impulses(flat("salt_pepper", 64, 48, 8, 128), 0.2, 8),
	uniform("uniform_11bit", 27, 19, 11, 9),
	uniform("uniform_13bit", 22, 25, 13, 10),
	uniform("uniform_15bit", 19, 23, 15, 11),
}

// uniform fills a plane with independent samples over the full value range.
func uniform(name string, width, height, bitDepth int, seed uint64) Case {
	c := newPlane(name, width, height, bitDepth)
	rng := newRand(seed)
	n := 1 << bitDepth
	for i := range c.Pix {
		c.Pix[i] = uint16(rng.IntN(n))
	}
	return c
}

// lowEntropy fills a plane with a handful of distinct values, so that many
// window samples are tied.
func lowEntropy(name string, width, height, bitDepth int, seed uint64) Case {
	c := newPlane(name, width, height, bitDepth)
	rng := newRand(seed)
	levels := []uint16{3, 17, 18, 100, 240}
	for i := range c.Pix {
		c.Pix[i] = levels[rng.IntN(len(levels))]
	}
	return c
}

// flat fills a plane with a constant value.
func flat(name string, width, height, bitDepth int, v uint16) Case {
	c := newPlane(name, width, height, bitDepth)
	for i := range c.Pix {
		c.Pix[i] = v
	}
	return c
}
