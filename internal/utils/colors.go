package utils

type colors struct {
	c map[string]int
}

var Colors = colors{
	// Palette: https://coolors.co/7b2cbf-38b000-2176ae-ffb703-d33f49
	c: map[string]int{
		"Void purple":     0x7b2cbf,
		"Pigment green":   0x38b000,
		"Honolulu Blue":   0x2176ae,
		"Selective amber": 0xffb703,
		"Rusty red":       0xd33f49,
	},
}

// Brand returns the organization's signature embed color
func (c colors) Brand() int {
	return c.c["Void purple"]
}

// Ok returns the color code for success messages
func (c colors) Ok() int {
	return c.c["Pigment green"]
}

// Info returns the color code for informational messages
func (c colors) Info() int {
	return c.c["Honolulu Blue"]
}

// Warning returns the color code for warning messages
func (c colors) Warning() int {
	return c.c["Selective amber"]
}

// Error returns the color code for error messages
func (c colors) Error() int {
	return c.c["Rusty red"]
}
