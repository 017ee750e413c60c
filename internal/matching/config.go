package matching

// Config contains the tunable parameters of the matching cascade. The
// numeric defaults were tuned empirically against real export data; treat
// them as configurable starting points, not invariants.
type Config struct {
	// Event calendar strategy.
	EventWindowDays     int     // Search window around the review date (default: 14)
	EventDecayDays      float64 // Temporal decay constant in days (default: 5)
	EventTitleWeight    float64 // Weight of event-title word overlap (default: 0.4)
	EventDecayWeight    float64 // Weight of temporal proximity (default: 0.4)
	EventLocationWeight float64 // Weight of a verbatim location mention (default: 0.2)
	EventAcceptScore    float64 // Minimum combined score to accept (default: 0.2)

	// Keyword overlap strategy.
	KeywordAccept    float64 // Minimum overlap ratio to accept (default: 0.5)
	KeywordMinLength int     // Words longer than this are significant (default: 4)

	// Fuzzy similarity strategy.
	FuzzyAccept float64 // Minimum similarity ratio to accept (default: 0.55)

	// Cluster builder.
	ClusterGapDays          int // Max day gap between cluster neighbours (default: 3)
	ClusterMinSize          int // Smallest cluster worth keeping (default: 2)
	ClusterAnchorWindowDays int // Anchor proximity for the override strategy (default: 7)

	// EnableDateStrategies layers the event calendar and cluster override
	// strategies on top of the base alias/keyword/fuzzy cascade.
	EnableDateStrategies bool

	// Concurrency bounds the number of parallel scoring goroutines during
	// the unassisted first pass.
	Concurrency int

	// StopWords are excluded from keyword sets regardless of length.
	// Keywords are always included regardless of length (location and
	// theme terms too short for the significance cutoff).
	StopWords []string
	Keywords  []string
}

// defaultStopWords covers domain filler that appears in nearly every review
// and would otherwise dominate keyword overlap.
var defaultStopWords = []string{
	"photography", "photographer", "photos", "photo", "workshop", "workshops",
	"course", "courses", "lesson", "lessons", "great", "amazing", "excellent",
	"wonderful", "lovely", "really", "highly", "recommend", "recommended",
	"experience", "thank", "thanks", "would", "brilliant", "fantastic",
	"alan", "ranger", "session", "sessions", "day", "time",
}

// defaultKeywords are location and theme terms that should survive
// tokenization even when at or below the significance length cutoff.
var defaultKeywords = []string{
	"gower", "macro", "dawn", "dusk", "night", "urban", "mono", "film",
}

// DefaultConfig returns the configuration used for the primary (Google)
// review source: full cascade with the date-aware strategies enabled.
func DefaultConfig() Config {
	return Config{
		EventWindowDays:         14,
		EventDecayDays:          5,
		EventTitleWeight:        0.4,
		EventDecayWeight:        0.4,
		EventLocationWeight:     0.2,
		EventAcceptScore:        0.2,
		KeywordAccept:           0.5,
		KeywordMinLength:        4,
		FuzzyAccept:             0.55,
		ClusterGapDays:          3,
		ClusterMinSize:          2,
		ClusterAnchorWindowDays: 7,
		EnableDateStrategies:    true,
		Concurrency:             4,
		StopWords:               defaultStopWords,
		Keywords:                defaultKeywords,
	}
}

// BaseConfig returns the configuration used for the secondary (Trustpilot)
// review source: the base three-stage cascade without date strategies, and
// a stricter minimum cluster size.
func BaseConfig() Config {
	cfg := DefaultConfig()
	cfg.EnableDateStrategies = false
	cfg.ClusterMinSize = 3
	return cfg
}
