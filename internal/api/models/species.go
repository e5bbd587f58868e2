package models

// Species describes one supported species profile.
type Species struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`

	// OptimalWaterTempC is the species' preferred water temperature band.
	OptimalWaterTempC ValueRange `json:"optimalWaterTempC"`

	// HasDedicatedModel reports whether the species is scored by its own
	// model rather than general-model adjustments.
	HasDedicatedModel bool `json:"hasDedicatedModel"`
}

// ValueRange is an inclusive numeric band.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SpeciesList is the response body for the species catalog endpoint.
type SpeciesList struct {
	Items []Species `json:"items"`
}
