package ir

// MacroPrefix starts every vectorization macro name.
const MacroPrefix = "VECTORIZE_"

// MacroArg is one expanded token of a vectorization macro.
//
// Rank counts the leading vector axis, so a 3-vector input ("dX") has rank 2.
// DimNames holds one name per axis. For outputs, DimValues holds the
// expression each axis is initialised to before allocation.
type MacroArg struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Rank      int      `json:"rank"`
	DimNames  []string `json:"dim_names,omitempty"`
	DimValues []string `json:"dim_values,omitempty"`
	Variable  bool     `json:"variable,omitempty"`
	Mutable   bool     `json:"mutable,omitempty"`
}

// Numeric reports whether the token is a floating-point array.
func (a MacroArg) Numeric() bool {
	return a.Key[0] == 'd' || a.Key[0] == 'e'
}

// MacroSig is the parsed form of a vectorization macro name.
type MacroSig struct {
	Name    string     `json:"name"`
	Inputs  []MacroArg `json:"inputs"`
	Outputs []MacroArg `json:"outputs"`
	Return  bool       `json:"return,omitempty"`
	Params  []string   `json:"params,omitempty"`
}

// Family returns the macro name without its prefix.
func (m *MacroSig) Family() string {
	return m.Name[len(MacroPrefix):]
}

// Sizers returns the inputs whose leading axis drives the loop.
func (m *MacroSig) Sizers() []MacroArg {
	var out []MacroArg
	for _, in := range m.Inputs {
		if in.Rank > 0 {
			out = append(out, in)
		}
	}
	return out
}
