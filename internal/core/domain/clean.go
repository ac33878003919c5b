package domain

// CleanConfig holds the options of the text-cleaning pipeline.
// It is built once per run and never mutated afterwards.
type CleanConfig struct {
	ReplaceCodeblocks bool `toml:"replace_codeblocks" json:"replace_codeblocks"`
	ReplaceInlineCode bool `toml:"replace_inline_code" json:"replace_inline_code"`
	ReplaceURLs       bool `toml:"replace_urls" json:"replace_urls"`
	ReplaceMentions   bool `toml:"replace_mentions" json:"replace_mentions"`
	ReplaceIssueRefs  bool `toml:"replace_issue_refs" json:"replace_issue_refs"`
	ReplaceCommits    bool `toml:"replace_commits" json:"replace_commits"`
	ReplacePaths      bool `toml:"replace_paths" json:"replace_paths"`
	ReplaceFlags      bool `toml:"replace_flags" json:"replace_flags"`
	ReplaceVersions   bool `toml:"replace_versions" json:"replace_versions"`

	// DropBlockquotes removes quoted reply lines ("> ...").
	DropBlockquotes bool `toml:"drop_blockquotes" json:"drop_blockquotes"`

	// DropHTML replaces HTML tags with a space.
	DropHTML bool `toml:"drop_html" json:"drop_html"`

	// KeepMdLinkText rewrites [text](url) to text.
	KeepMdLinkText bool `toml:"keep_md_link_text" json:"keep_md_link_text"`

	// DropIfNoiseRatioGe is the noise score at or above which a document is dropped.
	DropIfNoiseRatioGe float64 `toml:"drop_if_noise_ratio_ge" json:"drop_if_noise_ratio_ge"`

	// DropIfTooLong is the truncation cap in characters. Zero disables truncation.
	DropIfTooLong int `toml:"drop_if_too_long" json:"drop_if_too_long"`

	// CompressProgressSpam folds "Iteration: NN%|..." lines into [PROGRESS] markers.
	CompressProgressSpam bool `toml:"compress_progress_spam" json:"compress_progress_spam"`
}

// Default cleaning thresholds.
const (
	DefaultNoiseThreshold = 0.1
	DefaultMaxLength      = 15000
)

// DefaultCleanConfig returns the configuration with every rule enabled.
func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		ReplaceCodeblocks:    true,
		ReplaceInlineCode:    true,
		ReplaceURLs:          true,
		ReplaceMentions:      true,
		ReplaceIssueRefs:     true,
		ReplaceCommits:       true,
		ReplacePaths:         true,
		ReplaceFlags:         true,
		ReplaceVersions:      true,
		DropBlockquotes:      true,
		DropHTML:             true,
		KeepMdLinkText:       true,
		DropIfNoiseRatioGe:   DefaultNoiseThreshold,
		DropIfTooLong:        DefaultMaxLength,
		CompressProgressSpam: true,
	}
}

// DropReason explains why a document was excluded from the kept set.
type DropReason string

const (
	// ReasonNone marks a document whose text was null.
	ReasonNone DropReason = "None"

	// ReasonTooShort marks a document shorter than MinCleanLength after cleaning.
	ReasonTooShort DropReason = "too_short"

	// ReasonMostlyNoise marks a document whose noise score reached the threshold.
	ReasonMostlyNoise DropReason = "mostly_noise"
)

// MinCleanLength is the shortest cleaned text, in characters, that is scored.
const MinCleanLength = 5

// NoiseStats are the character-class counts behind a noise score.
type NoiseStats struct {
	Length       int     `json:"len"`
	Letters      int     `json:"letters"`
	Digits       int     `json:"digits"`
	Spaces       int     `json:"spaces"`
	Other        int     `json:"other"`
	ProgressHits int     `json:"progress_hits"`
	IterLines    int     `json:"iter_lines"`
	NoiseScore   float64 `json:"noise_score"`
}

// Diagnostics is the audit trail attached to every cleaning outcome.
type Diagnostics struct {
	// TruncatedFrom is the pre-truncation length, or zero if no truncation happened.
	TruncatedFrom int

	// Noise is nil when the document never reached the noise classifier.
	Noise *NoiseStats
}

// Result is the outcome of cleaning one document: either Kept or Dropped.
type Result interface {
	// Dropped reports whether the document was excluded.
	Dropped() bool

	// Diagnostics returns the audit metadata for the outcome.
	Diagnostics() Diagnostics

	isResult()
}

// Kept is a document that survived cleaning.
type Kept struct {
	Text  string
	Audit Diagnostics
}

// Dropped is a document excluded from the kept set.
type Dropped struct {
	Reason DropReason
	Audit  Diagnostics
}

// Dropped reports false.
func (Kept) Dropped() bool { return false }

// Diagnostics returns the audit metadata.
func (k Kept) Diagnostics() Diagnostics { return k.Audit }

func (Kept) isResult() {}

// Dropped reports true.
func (Dropped) Dropped() bool { return true }

// Diagnostics returns the audit metadata.
func (d Dropped) Diagnostics() Diagnostics { return d.Audit }

func (Dropped) isResult() {}

// CleanSummary aggregates a batch run.
type CleanSummary struct {
	Kept    int
	Dropped int
}

// Total is the number of documents seen.
func (s CleanSummary) Total() int {
	return s.Kept + s.Dropped
}
