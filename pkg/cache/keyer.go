package cache

// LayoutKeyOpts holds the options that change a computed layout beyond the
// chart option itself.
type LayoutKeyOpts struct {
	Version string `json:"version,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Ticks   bool   `json:"ticks,omitempty"`
	Labels  bool   `json:"labels,omitempty"`
	Columns bool   `json:"columns,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed from a chart option.
	LayoutKey(optionHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component into a "kind:sha256" key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(optionHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", optionHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
