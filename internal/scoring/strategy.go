package scoring

// Strategy scores a single sample. Implementations are pure and safe for
// concurrent use.
type Strategy interface {
	// Name identifies the strategy and its revision, e.g. "general/v2".
	Name() string
	// Score evaluates one sample. It never fails: missing inputs fall
	// back to neutral factor scores.
	Score(in Input) FishingScore
}

// generalStrategy wraps the general weighted model.
type generalStrategy struct{}

func (generalStrategy) Name() string { return "general/v2" }

func (generalStrategy) Score(in Input) FishingScore { return ScoreGeneral(in) }

// Registry selects the scoring strategy for a request. Species with a
// dedicated model get it; everything else, including unknown species,
// falls back to the general model with profile adjustments.
type Registry struct {
	general Strategy
	species map[string]*speciesStrategy
}

// NewRegistry builds a registry over the built-in species catalog.
func NewRegistry() *Registry {
	return &Registry{
		general: generalStrategy{},
		species: newSpeciesStrategies(),
	}
}

// StrategyFor returns the strategy for the given profile. A nil profile
// selects the general model.
func (r *Registry) StrategyFor(profile *SpeciesProfile) Strategy {
	if profile == nil {
		return r.general
	}
	if ss, ok := r.species[profile.ID]; ok {
		return ss
	}
	return r.general
}

// Score resolves the species query, picks a strategy and scores the
// input. The resolved profile is attached to the input so the general
// model can apply species adjustments when no dedicated model exists.
func (r *Registry) Score(speciesQuery string, in Input) FishingScore {
	profile := ResolveSpecies(speciesQuery)
	in.Profile = profile
	return r.StrategyFor(profile).Score(in)
}
