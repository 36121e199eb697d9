package docx

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/docnorm/layout"
)

// defaultStyleName is used when a document declares no default paragraph style.
const defaultStyleName = "Normal"

// ResolvedStyle contains the resolved identity of a paragraph style.
type ResolvedStyle struct {
	ID   string
	Name string

	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading
}

// StyleResolver maps style IDs to display names.
type StyleResolver struct {
	styles    map[string]*styleDefXML
	resolved  map[string]*ResolvedStyle
	defaultID string
	titler    cases.Caser
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
		titler:   cases.Title(language.English),
	}
	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Default == "1" && (style.Type == "" || style.Type == "paragraph") && sr.defaultID == "" {
			sr.defaultID = style.StyleID
		}
	}
	return sr
}

// Resolve returns the resolved style for the given style ID. An empty or
// undefined ID resolves to the default paragraph style, except for Word's
// built-in heading IDs, which keep their heading name.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID}
	if def, ok := sr.styles[styleID]; ok && styleID != "" {
		resolved.Name = sr.displayName(def.Name.Val, styleID)
	} else if name, ok := builtInName(styleID); ok {
		resolved.Name = name
	} else {
		resolved.Name = sr.defaultName()
	}

	resolved.HeadingLevel, resolved.IsHeading = layout.StyleHeadingLevel(resolved.Name)
	if !resolved.IsHeading {
		resolved.HeadingLevel = 0
	}

	sr.resolved[styleID] = resolved
	return resolved
}

func (sr *StyleResolver) defaultName() string {
	if def, ok := sr.styles[sr.defaultID]; ok && sr.defaultID != "" {
		return sr.displayName(def.Name.Val, sr.defaultID)
	}
	return defaultStyleName
}

// displayName returns the UI name of a style. Built-in styles are stored
// with lower-case names ("heading 1") that Word shows capitalized.
func (sr *StyleResolver) displayName(name, styleID string) string {
	if name == "" {
		return styleID
	}
	if name == strings.ToLower(name) {
		return sr.titler.String(name)
	}
	return name
}

var builtInHeadingID = regexp.MustCompile(`^(?i)heading([1-9])$`)

// builtInName returns the display name for Word's built-in heading and title
// style IDs when the document does not define them.
func builtInName(styleID string) (string, bool) {
	if m := builtInHeadingID.FindStringSubmatch(styleID); m != nil {
		return layout.StyleHeadingPrefix + " " + m[1], true
	}
	switch strings.ToLower(styleID) {
	case "title":
		return "Title", true
	case "subtitle":
		return "Subtitle", true
	}
	return "", false
}
