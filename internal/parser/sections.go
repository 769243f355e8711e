package parser

import (
	"strings"

	"github.com/limitlesscruises/portguide/internal/portguide"
)

// Section names recognised by the parser.
const (
	SectionPortName             = "Port Name"
	SectionBasicInformation     = "Basic Information"
	SectionDescription          = "Description"
	SectionAboutPort            = "About Port"
	SectionQuickFacts           = "Quick Facts"
	SectionTransportConnections = "Transport Connections"
	SectionGettingAround        = "Getting Around"
	SectionMustSeeSights        = "Must-See Sights"
	SectionShoreExcursions      = "Shore Excursions"
	SectionNearestBeach         = "Nearest Beach"
	SectionFoodAndDrink         = "Food & Drink"
	SectionInsiderTips          = "Insider Tips"
	SectionWeather              = "Weather"
	SectionFAQ                  = "FAQ"
	SectionPracticalInformation = "Practical Information"
	SectionContentSections      = "Content Sections"
	SectionMeta                 = "Meta"
)

// sectionHandler applies one section's extraction rules. A handler is built
// when its section begins and discarded after end.
type sectionHandler interface {
	line(text, subsection string)
	subsection(name string)
	end()
}

// sectionHandlers maps a level-2 heading to the constructor of its handler.
// Headings missing from the table have their content dropped.
var sectionHandlers = map[string]func(b *builder) sectionHandler{
	SectionPortName: func(b *builder) sectionHandler {
		return &portNameSection{g: b.g, plain: true}
	},
	SectionBasicInformation: func(b *builder) sectionHandler {
		g := b.g
		return fieldSection{
			"Slug":           func(v string) { g.Slug = v },
			"Name":           func(v string) { g.Name, g.DisplayName = v, v },
			"Display Name":   func(v string) { g.DisplayName = v },
			"Country":        func(v string) { g.Country = v },
			"Region":         func(v string) { g.Region = v },
			"Tagline":        func(v string) { g.Tagline = v },
			"Port Character": func(v string) { g.PortCharacter = v },
			"Coordinates":    func(v string) { g.Coordinates = parseCoordinates(v) },
		}
	},
	SectionDescription: func(b *builder) sectionHandler {
		return &textSection{buf: textBuffer{paragraphs: true}, commit: func(s string) { b.g.Description = s }}
	},
	SectionAboutPort: func(b *builder) sectionHandler {
		return &textSection{commit: func(s string) { b.g.AboutPort.Text = s }}
	},
	SectionTransportConnections: func(b *builder) sectionHandler {
		return &textSection{commit: func(s string) { b.g.TransportConnections.Text = s }}
	},
	SectionGettingAround: func(b *builder) sectionHandler {
		return &textSection{commit: func(s string) { b.g.GettingAround.Text = s }}
	},
	SectionQuickFacts: func(b *builder) sectionHandler {
		return factsSection{facts: &b.g.QuickFacts}
	},
	SectionPracticalInformation: func(b *builder) sectionHandler {
		return factsSection{facts: &b.g.PracticalInfo}
	},
	SectionWeather: func(b *builder) sectionHandler {
		return factsSection{facts: &b.g.Weather}
	},
	SectionMustSeeSights: func(b *builder) sectionHandler {
		return &listSection[portguide.Sight]{
			list:  newItemList(&b.g.MustSeeSights),
			item:  newSight,
			field: setSightField,
		}
	},
	SectionShoreExcursions: func(b *builder) sectionHandler {
		return &listSection[portguide.Excursion]{
			list: newItemList(&b.g.ShoreExcursions),
			item: func(name, _ string) portguide.Excursion {
				return portguide.Excursion{Name: name}
			},
			field: setExcursionField,
		}
	},
	SectionFoodAndDrink: func(b *builder) sectionHandler {
		return &listSection[portguide.FoodItem]{
			list: newItemList(&b.g.FoodAndDrink),
			item: func(name, rest string) portguide.FoodItem {
				return portguide.FoodItem{Name: name, Type: headerAttr(rest, "type")}
			},
			field: setFoodField,
		}
	},
	SectionFAQ: func(b *builder) sectionHandler {
		return &listSection[portguide.FAQItem]{
			list: newItemList(&b.g.FAQ),
			item: func(question, _ string) portguide.FAQItem {
				return portguide.FAQItem{Question: question}
			},
			prose: appendAnswer,
		}
	},
	SectionNearestBeach: func(b *builder) sectionHandler {
		g := b.g
		return fieldSection{
			"Name":        func(v string) { g.NearestBeach.Name = v },
			"Distance":    func(v string) { g.NearestBeach.Distance = v },
			"Description": func(v string) { g.NearestBeach.Description = v },
		}
	},
	SectionInsiderTips: func(b *builder) sectionHandler {
		return tipsSection{tips: &b.g.InsiderTips}
	},
	SectionContentSections: func(b *builder) sectionHandler {
		g := b.g
		return &contentSection{targets: map[string]*string{
			"Overview":      &g.ContentOverview,
			"Stay Local":    &g.ContentStayLocal,
			"Go Further":    &g.ContentGoFurther,
			"With Kids":     &g.ContentWithKids,
			"Accessibility": &g.ContentAccessibility,
			"Medical":       &g.ContentMedical,
			"Food & Drink":  &g.ContentFoodDrink,
		}}
	},
	SectionMeta: func(b *builder) sectionHandler {
		return fieldSection{
			"Title":            b.setMetaTitle,
			"Meta Title":       b.setMetaTitle,
			"Description":      b.setMetaDescription,
			"Meta Description": b.setMetaDescription,
		}
	},
}

// portNameSection takes the port name from a "# Title" line. When plain is
// set, as under an explicit "## Port Name" heading, the first bare line
// counts too; prose after it is ignored.
type portNameSection struct {
	g     *portguide.PortGuide
	plain bool
	named bool
}

func (s *portNameSection) line(text, _ string) {
	var name string
	switch {
	case strings.HasPrefix(text, "# "):
		name = strings.TrimSpace(text[2:])
	case s.plain && !s.named && text != "" && !isBullet(text):
		name = text
	default:
		return
	}
	s.named = true
	s.g.Name = name
	s.g.DisplayName = name
}

func (s *portNameSection) subsection(string) {}
func (s *portNameSection) end()              {}

// fieldSection assigns "- Key: value" bullets to fixed fields by exact key.
type fieldSection map[string]func(value string)

func (s fieldSection) line(text, _ string) {
	key, value, ok := bulletField(text)
	if !ok {
		return
	}
	if set, ok := s[key]; ok {
		set(value)
	}
}

func (fieldSection) subsection(string) {}
func (fieldSection) end()              {}

// factsSection stores every "- Label: value" bullet under a snake_cased key.
type factsSection struct {
	facts *portguide.Facts
}

func (s factsSection) line(text, _ string) {
	if key, value, ok := bulletField(text); ok {
		s.facts.Set(snakeKey(key), value)
	}
}

func (factsSection) subsection(string) {}
func (factsSection) end()              {}

// textSection accumulates every line into one field, committed at end.
type textSection struct {
	buf    textBuffer
	commit func(string)
}

func (s *textSection) line(text, _ string) { s.buf.add(text) }
func (s *textSection) subsection(string)   {}

func (s *textSection) end() {
	if text, ok := s.buf.flush(); ok {
		s.commit(text)
	}
}

// tipsSection appends one tip per bullet.
type tipsSection struct {
	tips *[]string
}

func (s tipsSection) line(text, _ string) {
	if tip, ok := bulletText(text); ok {
		*s.tips = append(*s.tips, tip)
	}
}

func (tipsSection) subsection(string) {}
func (tipsSection) end()              {}

// contentSection routes text under each "### Name" to the field registered
// for that exact subsection name.
type contentSection struct {
	targets map[string]*string
	target  *string
	buf     textBuffer
}

func (s *contentSection) line(text, _ string) {
	if s.target != nil {
		s.buf.add(text)
	}
}

func (s *contentSection) subsection(name string) {
	s.flush()
	s.target = s.targets[name]
}

func (s *contentSection) end() { s.flush() }

func (s *contentSection) flush() {
	text, ok := s.buf.flush()
	if ok && s.target != nil {
		*s.target = text
	}
}

// listSection builds items of one shape from numbered "**Name**" headers and
// the bullets that follow them.
type listSection[T any] struct {
	list *itemList[T]
	// item builds a fresh item from the bold header name and the text after it.
	item func(name, rest string) T
	// field assigns a "- Key: value" bullet to the open item. Nil ignores bullets.
	field func(item *T, key, value string)
	// prose receives non-bullet lines for the open item. Nil ignores them.
	prose func(item *T, text string)
}

func (s *listSection[T]) line(text, _ string) {
	if name, rest, ok := itemHeader(text); ok {
		s.list.start(s.item(name, rest))
		return
	}
	open := s.list.current()
	if open == nil || text == "" {
		return
	}
	if isBullet(text) {
		if key, value, ok := bulletField(text); ok && s.field != nil {
			s.field(open, key, value)
		}
		return
	}
	if s.prose != nil {
		s.prose(open, text)
	}
}

func (s *listSection[T]) subsection(string) { s.list.flush() }
func (s *listSection[T]) end()              { s.list.flush() }

func newSight(name, rest string) portguide.Sight {
	return portguide.Sight{
		Name:       name,
		Category:   headerAttr(rest, "category"),
		Highlights: []string{},
		GoodFor:    []string{},
	}
}

func setSightField(s *portguide.Sight, key, value string) {
	switch key {
	case "Category":
		s.Category = value
	case "Description":
		s.Description = value
	case "Duration":
		s.Duration = value
	case "Tips":
		s.Tips = value
	case "Highlights":
		s.Highlights = splitList(value)
	case "Good For":
		s.GoodFor = splitList(value)
	}
}

func setExcursionField(e *portguide.Excursion, key, value string) {
	switch key {
	case "Description":
		e.Description = value
	case "Duration":
		e.Duration = value
	case "Book With":
		e.BookWith = value
	case "Notes":
		e.Notes = value
	}
}

func setFoodField(f *portguide.FoodItem, key, value string) {
	switch key {
	case "Type":
		f.Type = value
	case "Description":
		f.Description = value
	}
}

func appendAnswer(f *portguide.FAQItem, text string) {
	if f.Answer == "" {
		f.Answer = text
		return
	}
	f.Answer += " " + text
}
