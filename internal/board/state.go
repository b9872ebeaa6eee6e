package board

// State is a board instance snapshot. It is what gets persisted per board
// and what is copied when one board is cloned into another.
type State struct {
	Main Canvas `json:"main"`
}

// Canvas holds the elements placed on a board.
type Canvas struct {
	Elements []Element `json:"elements"`
}

// Element is one item on the canvas.
type Element struct {
	ID              string         `json:"id"`
	ContentType     ElementContent `json:"contentType"`
	Telemetry       Telemetry      `json:"telemetry"`
	BackgroundColor string         `json:"backgroundColor,omitempty"`
}

// ElementContent is the sub-content rendered inside an element.
type ElementContent struct {
	Library      string        `json:"library"`
	SubContentID string        `json:"subContentId"`
	Params       ElementParams `json:"params"`
}

// ElementParams are the editable parameters of an element.
type ElementParams struct {
	Text string `json:"text"`
}

// Telemetry is an element's placement in percent of the canvas.
type Telemetry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Copy returns a deep copy of s.
func (s State) Copy() State {
	out := State{}
	if s.Main.Elements != nil {
		out.Main.Elements = make([]Element, len(s.Main.Elements))
		copy(out.Main.Elements, s.Main.Elements)
	}
	return out
}

// WithFreshIDs returns a copy of s in which every element id and nested
// sub-content id comes from newID.
func (s State) WithFreshIDs(newID func() string) State {
	out := s.Copy()
	for i := range out.Main.Elements {
		out.Main.Elements[i].ID = newID()
		out.Main.Elements[i].ContentType.SubContentID = newID()
	}
	return out
}
