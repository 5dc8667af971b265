package core

import "jmt/geometry"

// Settings holds the diagram-wide defaults. Individual elements may
// override a subset of these through explicit fields (e.g.
// State.ShowActivitiesOverride, State.FillColor).
type Settings struct {
	ShowActivities     bool
	ShowLeaderLines    bool
	CodeIndent         string // reserved, passed through unmodified
	NewLine            string // reserved, passed through unmodified
	DefaultFill        geometry.Color
	DefaultStroke      geometry.Color
	MinStateWidth      float64
	MinStateHeight     float64
	SlotStep           float64
	AlignmentTolerance float64
	MinSeparation      float64
	StubLength         float64
	DoubleClickMs      int
	DoubleClickDist    float64
	CornerTolerance    float64
	SeparatorTolerance float64
}

// DefaultSettings returns a Settings populated with every default value.
func DefaultSettings() Settings {
	return Settings{
		ShowActivities:     true,
		ShowLeaderLines:    false,
		CodeIndent:         "    ",
		NewLine:            "\n",
		DefaultFill:        geometry.StateFill,
		DefaultStroke:      geometry.Black,
		MinStateWidth:      40,
		MinStateHeight:     30,
		SlotStep:           15,
		AlignmentTolerance: 20,
		MinSeparation:      20,
		StubLength:         10,
		DoubleClickMs:      500,
		DoubleClickDist:    10,
		CornerTolerance:    6,
		SeparatorTolerance: 5,
	}
}
