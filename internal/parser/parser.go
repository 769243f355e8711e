// Package parser converts a port guide Markdown document into a
// portguide.PortGuide record.
//
// The document is read line by line. Level-2 headings select a section
// whose handler extracts fields from the lines that follow; level-3 headings
// start subsections within it. The parser recognises a fixed heading and
// bullet vocabulary and is not a general Markdown parser.
package parser

import (
	"fmt"

	"github.com/limitlesscruises/portguide/internal/portguide"
)

// DefaultSiteName is used in the default meta title when Options.SiteName is empty.
const DefaultSiteName = "Limitless Cruises"

// MetaDescriptionLength is the rune length of a derived meta description.
const MetaDescriptionLength = 160

// Options carries environment values the record defaults depend on.
type Options struct {
	SiteName string
}

func (o Options) siteName() string {
	if o.SiteName == "" {
		return DefaultSiteName
	}
	return o.SiteName
}

// builder is the state of one Parse call: the record under construction and
// which derived fields the document set explicitly.
type builder struct {
	g *portguide.PortGuide

	metaTitleSet       bool
	metaDescriptionSet bool
}

func (b *builder) setMetaTitle(v string) {
	b.g.MetaTitle = v
	b.metaTitleSet = true
}

func (b *builder) setMetaDescription(v string) {
	b.g.MetaDescription = v
	b.metaDescriptionSet = true
}

// Parse builds a port guide from doc. It never fails; missing or malformed
// input leaves fields at their defaults. Callers validate the result with
// portguide.Validate.
func Parse(doc string, opts Options) *portguide.PortGuide {
	b := &builder{g: portguide.New()}

	// Lines before the first section heading can only name the port.
	var h sectionHandler = &portNameSection{g: b.g}
	for _, l := range Scan(doc) {
		switch l.Kind {
		case SectionStart:
			if h != nil {
				h.end()
			}
			h = nil
			if newHandler, ok := sectionHandlers[l.Section]; ok {
				h = newHandler(b)
			}
		case SubsectionStart:
			if h != nil {
				h.subsection(l.Subsection)
			}
		default:
			if h != nil {
				h.line(l.Text, l.Subsection)
			}
		}
	}
	if h != nil {
		h.end()
	}

	b.finalize(opts)
	return b.g
}

// finalize fills derived defaults for fields the document did not set. A
// field set to an empty value under Meta stays empty.
func (b *builder) finalize(opts Options) {
	g := b.g
	if !b.metaTitleSet && g.Name != "" {
		g.MetaTitle = fmt.Sprintf("%s Cruise Port Guide | %s", g.Name, opts.siteName())
	}
	if !b.metaDescriptionSet {
		g.MetaDescription = truncateRunes(g.Description, MetaDescriptionLength)
	}
}
