package testplanes

// All contains all test planes, grouped by category.
// The category name is used as a prefix in exported file names.
var All = map[string][]Case{
	"noise":    noiseCases,
	"gradient": gradientCases,
	"shape":    shapeCases,
	"edge":     edgeCases,
}
