package cache

// Key prefixes, also used as the keyType label for cache hooks.
const (
	KeyTypeResult = "result"
	KeyTypeParse  = "parse"
)

// ResultKeyOpts are the settings that change a simulation result.
type ResultKeyOpts struct {
	Mode          string `json:"mode"`
	CommentMarker string `json:"comment_marker"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey is the key of a simulation report for the input with the
	// given hash.
	ResultKey(inputHash string, opts ResultKeyOpts) string

	// ParseKey is the key of the initial yard report for the input with the
	// given hash. Mode does not affect parsing.
	ParseKey(inputHash, commentMarker string) string
}

// DefaultKeyer hashes every key component into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey generates a key for a simulation report.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey(KeyTypeResult, inputHash, opts)
}

// ParseKey generates a key for a parse-only report.
func (DefaultKeyer) ParseKey(inputHash, commentMarker string) string {
	return hashKey(KeyTypeParse, inputHash, commentMarker)
}
