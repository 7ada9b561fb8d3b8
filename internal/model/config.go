package model

// CollapseDefault decides which parents start collapsed
type CollapseDefault string

const (
	CollapseAllExpanded   CollapseDefault = "all-expanded"
	CollapseAllCollapsed  CollapseDefault = "all-collapsed"
	CollapseFirstExpanded CollapseDefault = "first-expanded"
	CollapseTopLevelOnly  CollapseDefault = "top-level-only"
)

// RevealMode is the disclosure playback policy
type RevealMode string

const (
	RevealAllAtOnce          RevealMode = "all-at-once"
	RevealOneByOneFocus      RevealMode = "one-by-one-focus"
	RevealOneByOneAccumulate RevealMode = "one-by-one-accumulate"
	RevealBySection          RevealMode = "by-section"
)

// NumberingFormat is one of the supported numbering styles
type NumberingFormat string

const (
	NumberDecimalDot    NumberingFormat = "1."
	NumberDecimalParen  NumberingFormat = "1)"
	NumberDecimalWrap   NumberingFormat = "(1)"
	NumberAlphaParen    NumberingFormat = "a)"
	NumberAlphaDot      NumberingFormat = "a."
	NumberUpperAlphaDot NumberingFormat = "A."
	NumberRomanDot      NumberingFormat = "i."
	NumberUpperRomanDot NumberingFormat = "I."
)

// Intensity controls how strongly conditional formatting tints a row
type Intensity string

const (
	IntensitySubtle Intensity = "subtle"
	IntensityMedium Intensity = "medium"
	IntensityStrong Intensity = "strong"
)

// ProgressSummary places the progress bar relative to the list
type ProgressSummary string

const (
	ProgressHidden ProgressSummary = "hidden"
	ProgressAbove  ProgressSummary = "above"
	ProgressBelow  ProgressSummary = "below"
)

// DetailMode decides whether items can expand their detail text
type DetailMode string

const (
	DetailNone   DetailMode = "none"
	DetailInline DetailMode = "inline"
)

// Config holds the per-render list settings
type Config struct {
	IconSetID             string          `json:"iconSetId,omitempty" yaml:"iconSetId,omitempty" toml:"icon_set"`
	SecondaryIconSetID    string          `json:"secondaryIconSetId,omitempty" yaml:"secondaryIconSetId,omitempty" toml:"secondary_icon_set"`
	CollapseDefault       CollapseDefault `json:"collapseDefault,omitempty" yaml:"collapseDefault,omitempty" toml:"collapse_default"`
	RevealMode            RevealMode      `json:"revealMode,omitempty" yaml:"revealMode,omitempty" toml:"reveal_mode"`
	ShowNumbering         bool            `json:"showNumbering,omitempty" yaml:"showNumbering,omitempty" toml:"show_numbering"`
	NumberingFormat       NumberingFormat `json:"numberingFormat,omitempty" yaml:"numberingFormat,omitempty" toml:"numbering_format"`
	ChildNumberingFormat  NumberingFormat `json:"childNumberingFormat,omitempty" yaml:"childNumberingFormat,omitempty" toml:"child_numbering_format"`
	FilterByStatuses      []string        `json:"filterByStatuses,omitempty" yaml:"filterByStatuses,omitempty" toml:"filter_by_statuses"`
	GroupByStatus         bool            `json:"groupByStatus,omitempty" yaml:"groupByStatus,omitempty" toml:"group_by_status"`
	ConditionalFormatting bool            `json:"conditionalFormatting,omitempty" yaml:"conditionalFormatting,omitempty" toml:"conditional_formatting"`
	Intensity             Intensity       `json:"intensity,omitempty" yaml:"intensity,omitempty" toml:"intensity"`
	ProgressSummary       ProgressSummary `json:"progressSummary,omitempty" yaml:"progressSummary,omitempty" toml:"progress_summary"`
	DetailMode            DetailMode      `json:"detailMode,omitempty" yaml:"detailMode,omitempty" toml:"detail_mode"`
}

// DefaultIconSetID is the icon set used when none is configured
const DefaultIconSetID = "status"

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		IconSetID:       DefaultIconSetID,
		CollapseDefault: CollapseAllExpanded,
		RevealMode:      RevealAllAtOnce,
		NumberingFormat: NumberDecimalDot,
		Intensity:       IntensityMedium,
		ProgressSummary: ProgressHidden,
		DetailMode:      DetailInline,
	}
}

// Normalize replaces empty or unknown enum values with their defaults.
// ChildNumberingFormat stays empty when unset so the fallback table applies.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.IconSetID == "" {
		c.IconSetID = def.IconSetID
	}
	switch c.CollapseDefault {
	case CollapseAllExpanded, CollapseAllCollapsed, CollapseFirstExpanded, CollapseTopLevelOnly:
	default:
		c.CollapseDefault = def.CollapseDefault
	}
	switch c.RevealMode {
	case RevealAllAtOnce, RevealOneByOneFocus, RevealOneByOneAccumulate, RevealBySection:
	default:
		c.RevealMode = def.RevealMode
	}
	if !c.NumberingFormat.Valid() {
		c.NumberingFormat = def.NumberingFormat
	}
	if c.ChildNumberingFormat != "" && !c.ChildNumberingFormat.Valid() {
		c.ChildNumberingFormat = ""
	}
	switch c.Intensity {
	case IntensitySubtle, IntensityMedium, IntensityStrong:
	default:
		c.Intensity = def.Intensity
	}
	switch c.ProgressSummary {
	case ProgressHidden, ProgressAbove, ProgressBelow:
	default:
		c.ProgressSummary = def.ProgressSummary
	}
	switch c.DetailMode {
	case DetailNone, DetailInline:
	default:
		c.DetailMode = def.DetailMode
	}
	return c
}

// DocumentConfig is the list configuration stored with a document. Every
// field is optional; a nil bool leaves the base value alone, so a document
// can switch off a setting the config file turns on.
type DocumentConfig struct {
	IconSetID             string          `json:"iconSetId,omitempty" yaml:"iconSetId,omitempty"`
	SecondaryIconSetID    string          `json:"secondaryIconSetId,omitempty" yaml:"secondaryIconSetId,omitempty"`
	CollapseDefault       CollapseDefault `json:"collapseDefault,omitempty" yaml:"collapseDefault,omitempty"`
	RevealMode            RevealMode      `json:"revealMode,omitempty" yaml:"revealMode,omitempty"`
	ShowNumbering         *bool           `json:"showNumbering,omitempty" yaml:"showNumbering,omitempty"`
	NumberingFormat       NumberingFormat `json:"numberingFormat,omitempty" yaml:"numberingFormat,omitempty"`
	ChildNumberingFormat  NumberingFormat `json:"childNumberingFormat,omitempty" yaml:"childNumberingFormat,omitempty"`
	FilterByStatuses      []string        `json:"filterByStatuses,omitempty" yaml:"filterByStatuses,omitempty"`
	GroupByStatus         *bool           `json:"groupByStatus,omitempty" yaml:"groupByStatus,omitempty"`
	ConditionalFormatting *bool           `json:"conditionalFormatting,omitempty" yaml:"conditionalFormatting,omitempty"`
	Intensity             Intensity       `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	ProgressSummary       ProgressSummary `json:"progressSummary,omitempty" yaml:"progressSummary,omitempty"`
	DetailMode            DetailMode      `json:"detailMode,omitempty" yaml:"detailMode,omitempty"`
}

// Merge overlays the fields o sets on top of c
func (c Config) Merge(o *DocumentConfig) Config {
	if o == nil {
		return c
	}
	if o.IconSetID != "" {
		c.IconSetID = o.IconSetID
	}
	if o.SecondaryIconSetID != "" {
		c.SecondaryIconSetID = o.SecondaryIconSetID
	}
	if o.CollapseDefault != "" {
		c.CollapseDefault = o.CollapseDefault
	}
	if o.RevealMode != "" {
		c.RevealMode = o.RevealMode
	}
	if o.ShowNumbering != nil {
		c.ShowNumbering = *o.ShowNumbering
	}
	if o.NumberingFormat != "" {
		c.NumberingFormat = o.NumberingFormat
	}
	if o.ChildNumberingFormat != "" {
		c.ChildNumberingFormat = o.ChildNumberingFormat
	}
	if o.FilterByStatuses != nil {
		c.FilterByStatuses = append([]string(nil), o.FilterByStatuses...)
	}
	if o.GroupByStatus != nil {
		c.GroupByStatus = *o.GroupByStatus
	}
	if o.ConditionalFormatting != nil {
		c.ConditionalFormatting = *o.ConditionalFormatting
	}
	if o.Intensity != "" {
		c.Intensity = o.Intensity
	}
	if o.ProgressSummary != "" {
		c.ProgressSummary = o.ProgressSummary
	}
	if o.DetailMode != "" {
		c.DetailMode = o.DetailMode
	}
	return c
}

// Valid reports whether f is one of the supported numbering styles
func (f NumberingFormat) Valid() bool {
	switch f {
	case NumberDecimalDot, NumberDecimalParen, NumberDecimalWrap,
		NumberAlphaParen, NumberAlphaDot, NumberUpperAlphaDot,
		NumberRomanDot, NumberUpperRomanDot:
		return true
	}
	return false
}

// StatusAllowed reports whether the status filter lets status through.
// An empty filter allows everything; an empty status never matches a filter.
func (c Config) StatusAllowed(status string) bool {
	if len(c.FilterByStatuses) == 0 {
		return true
	}
	if status == "" {
		return false
	}
	for _, s := range c.FilterByStatuses {
		if s == status {
			return true
		}
	}
	return false
}
