package command

import (
	"fmt"
	"strings"
)

// Choices holds the device specific choice lists the actions draw from.
// Selector ids are register bytes; aux ids are full literal addresses.
type Choices struct {
	PinP      []Choice // PinP channel selectors
	DSK       []Choice // DSK channel selectors
	Sources   []Choice // PinP/key/PGM/PVW sources
	PinPKeys  []Choice // PinP and DSK selectors together
	PinPTypes []Choice

	Inputs       []Choice
	InputAssign  []Choice
	Outputs      []Choice
	OutputAssign []Choice

	Auxes            []Choice
	AuxAssign        []Choice
	AuxLinks         []Choice
	AuxPinPKeyEnable []Choice

	TransitionTypes []Choice
	MixTypes        []Choice
	WipeTypes       []Choice
	WipeDirections  []Choice

	Memories []Choice

	Cameras            []Choice
	CameraPan          []Choice
	CameraTilt         []Choice
	CameraPanTiltSpeed []Choice
	CameraZoom         []Choice
	CameraFocus        []Choice
	CameraExposure     []Choice
}

// DefaultChoices returns the built-in device map.
func DefaultChoices() Choices {
	pinp := labelled(0x15, 4, "PinP %d")
	dsk := labelled(0x19, 2, "DSK %d")

	var sources []Choice
	sources = append(sources, labelled(0, 6, "HDMI %d")...)
	sources = append(sources, labelled(6, 6, "SDI %d")...)
	sources = append(sources, labelled(12, 16, "Still %d")...)
	sources = append(sources, Choice{ID: 28, Label: "Video Player/SRT In"})
	sources = append(sources, labelled(29, 8, "Input %d")...)

	var outputs []Choice
	outputs = append(outputs, labelled(0x0D, 3, "HDMI OUT %d")...)
	outputs = append(outputs, labelled(0x10, 3, "SDI OUT %d")...)
	outputs = append(outputs, Choice{ID: 0x13, Label: "USB OUT"})

	var auxPinPKeys []Choice
	for a := 0; a < 3; a++ {
		for k, key := range append(append([]Choice{}, pinp...), dsk...) {
			auxPinPKeys = append(auxPinPKeys, Choice{
				ID:    0x020160 + a*6 + k,
				Label: fmt.Sprintf("Aux %d %s", a+1, key.Label),
			})
		}
	}

	return Choices{
		PinP:      pinp,
		DSK:       dsk,
		Sources:   sources,
		PinPKeys:  append(append([]Choice{}, pinp...), dsk...),
		PinPTypes: []Choice{{0, "PinP"}, {1, "Luminance Key"}, {2, "Chroma Key"}, {3, "Split"}},

		Inputs:      labelled(0x00, 8, "Input %d"),
		InputAssign: append(labelled(0, 6, "HDMI %d"), labelled(6, 6, "SDI %d")...),
		Outputs:     outputs,
		OutputAssign: []Choice{
			{0, "PGM"}, {1, "SUB"}, {2, "PVW"}, {3, "AUX 1"}, {4, "AUX 2"}, {5, "AUX 3"}, {6, "MULTI-VIEW"},
		},

		Auxes:            labelled(0x020159, 3, "Aux %d"),
		AuxAssign:        sources,
		AuxLinks:         labelled(0x02015D, 3, "Aux %d"),
		AuxPinPKeyEnable: auxPinPKeys,

		TransitionTypes: []Choice{{0, "Mix"}, {1, "Wipe"}},
		MixTypes:        []Choice{{0, "Mix"}, {1, "FAM"}, {2, "NAM"}},
		WipeTypes: []Choice{
			{0, "Horizontal"}, {1, "Vertical"}, {2, "Upper Left"}, {3, "Upper Right"},
			{4, "Lower Left"}, {5, "Lower Right"}, {6, "H Center"}, {7, "V Center"},
		},
		WipeDirections: []Choice{{0, "Normal"}, {1, "Reverse"}, {2, "One Way"}},

		Memories: labelled(0, 30, "Memory %d"),

		Cameras:            labelled(0x30, 16, "Camera %d"),
		CameraPan:          []Choice{{0, "Stop"}, {1, "Left"}, {2, "Right"}},
		CameraTilt:         []Choice{{0, "Stop"}, {1, "Down"}, {2, "Up"}},
		CameraPanTiltSpeed: labelled(0, 24, "Speed %d"),
		CameraZoom:         []Choice{{0, "Stop"}, {1, "Wide Fast"}, {2, "Wide Slow"}, {3, "Tele Slow"}, {4, "Tele Fast"}},
		CameraFocus:        []Choice{{0, "Stop"}, {1, "Near"}, {2, "Far"}},
		CameraExposure:     exposure(),
	}
}

// labelled returns n consecutive choices starting at first, numbered from 1.
func labelled(first, n int, format string) []Choice {
	out := make([]Choice, n)
	for i := range out {
		out[i] = Choice{ID: first + i, Label: fmt.Sprintf(format, i+1)}
	}
	return out
}

func exposure() []Choice {
	out := make([]Choice, 0, 15)
	for i := -7; i <= 7; i++ {
		out = append(out, Choice{ID: i + 7, Label: fmt.Sprintf("%+d", i)})
	}
	return out
}

func withPrefix(choices []Choice, prefix string) []Choice {
	var out []Choice
	for _, c := range choices {
		if strings.HasPrefix(c.Label, prefix) {
			out = append(out, c)
		}
	}
	return out
}
