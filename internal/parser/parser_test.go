package parser

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const fullGuide = `# Funchal

## Basic Information
- Slug: funchal
- Country: Portugal
- Region: Atlantic Islands
- Tagline: Garden city of the Atlantic
- Port Character: Walkable
- Coordinates: 32.64, -16.93

## Description
Funchal sits on a natural amphitheatre.
The marina is a short walk from the ship.

The old town has narrow streets.

## About Port
The cruise terminal is at Pontinha pier.
Shuttles run to the marina.

## Quick Facts
- Currency: Euro
- Best Time: March to October
- Language: Portuguese

## Transport Connections
Airport 20 minutes by taxi.

## Getting Around
Cable car to Monte.

## Must-See Sights
1. **Monte Palace** (category: garden)
   - Description: Tropical gardens above the city.
   - Duration: 2 hours
   - Tips: Take the cable car up.
   - Highlights: koi ponds, azulejos, views
   - Good For: families
2. **Mercado dos Lavradores**
   - Category: market
   - Duration: 1 hour

## Shore Excursions
1. **Levada Walk**
   - Description: Walk an irrigation channel.
   - Duration: 4 hours
   - Book With: Ship
   - Notes: Wear good shoes.

## Nearest Beach
- Name: Praia Formosa
- Distance: 3 km
- Description: Black sand.

## Food & Drink
1. **Espetada** (type: dish)
   - Description: Beef skewers on bay laurel.
2. **Poncha**
   - Type: drink

## Insider Tips
- Go up by cable car, down by toboggan.
- The market is busiest before noon.

## Weather
- Summer: 25C
- Winter: 19C

## FAQ
1. **Can I walk into town?**
Yes, it takes about fifteen minutes.
The route is flat.
2. **Is there a shuttle?**
Sometimes.

## Practical Information
- Wifi: Free at the terminal
- Taxi Rank: Outside the gate

## Content Sections
### Overview
Funchal overview.
### Stay Local
Stay near the marina.
### Accessibility
Lifts at the terminal.
### Something Else
Dropped.

## Meta
- Title: Funchal Cruise Port
`

func TestParse_Scenario(t *testing.T) {
	doc := "# Test Port\n## Basic Information\n- Slug: test-port\n- Country: Spain\n## Description\nLovely place.\n"
	g := Parse(doc, Options{})

	if g.Name != "Test Port" {
		t.Errorf("expected name %q, got %q", "Test Port", g.Name)
	}
	if g.DisplayName != "Test Port" {
		t.Errorf("expected display name %q, got %q", "Test Port", g.DisplayName)
	}
	if g.Slug != "test-port" {
		t.Errorf("expected slug %q, got %q", "test-port", g.Slug)
	}
	if g.Country != "Spain" {
		t.Errorf("expected country %q, got %q", "Spain", g.Country)
	}
	if g.Description != "Lovely place." {
		t.Errorf("expected description %q, got %q", "Lovely place.", g.Description)
	}
	if g.MetaTitle != "Test Port Cruise Port Guide | Limitless Cruises" {
		t.Errorf("unexpected meta title %q", g.MetaTitle)
	}
	if g.MetaDescription != "Lovely place." {
		t.Errorf("unexpected meta description %q", g.MetaDescription)
	}
	if g.Status != "draft" || g.ShowInMenu || g.IsComplete {
		t.Errorf("unexpected status defaults: %q %v %v", g.Status, g.ShowInMenu, g.IsComplete)
	}
}

func TestParse_FullGuide(t *testing.T) {
	g := Parse(fullGuide, Options{})

	if g.Region != "Atlantic Islands" || g.Tagline != "Garden city of the Atlantic" || g.PortCharacter != "Walkable" {
		t.Errorf("unexpected basic info: %+v", g)
	}
	if g.Coordinates.Lat != 32.64 || g.Coordinates.Lon != -16.93 {
		t.Errorf("unexpected coordinates: %+v", g.Coordinates)
	}
	if g.AboutPort.Text != "The cruise terminal is at Pontinha pier.\nShuttles run to the marina." {
		t.Errorf("unexpected about port %q", g.AboutPort.Text)
	}
	if g.TransportConnections.Text != "Airport 20 minutes by taxi." {
		t.Errorf("unexpected transport %q", g.TransportConnections.Text)
	}
	if g.GettingAround.Text != "Cable car to Monte." {
		t.Errorf("unexpected getting around %q", g.GettingAround.Text)
	}

	if v, _ := g.QuickFacts.Get("best_time"); v != "March to October" {
		t.Errorf("expected best_time fact, got %q", v)
	}
	if v, _ := g.PracticalInfo.Get("taxi_rank"); v != "Outside the gate" {
		t.Errorf("expected taxi_rank info, got %q", v)
	}
	if v, _ := g.Weather.Get("winter"); v != "19C" {
		t.Errorf("expected winter weather, got %q", v)
	}

	if len(g.MustSeeSights) != 2 {
		t.Fatalf("expected 2 sights, got %d", len(g.MustSeeSights))
	}
	monte := g.MustSeeSights[0]
	if monte.Name != "Monte Palace" || monte.Category != "garden" || monte.Duration != "2 hours" {
		t.Errorf("unexpected first sight: %+v", monte)
	}
	if monte.Tips != "Take the cable car up." || monte.Description != "Tropical gardens above the city." {
		t.Errorf("unexpected first sight text: %+v", monte)
	}
	if !reflect.DeepEqual(monte.Highlights, []string{"koi ponds", "azulejos", "views"}) {
		t.Errorf("unexpected highlights: %v", monte.Highlights)
	}
	if !reflect.DeepEqual(monte.GoodFor, []string{"families"}) {
		t.Errorf("unexpected good for: %v", monte.GoodFor)
	}
	if g.MustSeeSights[1].Category != "market" {
		t.Errorf("expected bullet category, got %q", g.MustSeeSights[1].Category)
	}

	if len(g.ShoreExcursions) != 1 {
		t.Fatalf("expected 1 excursion, got %d", len(g.ShoreExcursions))
	}
	ex := g.ShoreExcursions[0]
	if ex.Name != "Levada Walk" || ex.BookWith != "Ship" || ex.Notes != "Wear good shoes." || ex.Duration != "4 hours" {
		t.Errorf("unexpected excursion: %+v", ex)
	}

	if g.NearestBeach.Name != "Praia Formosa" || g.NearestBeach.Distance != "3 km" || g.NearestBeach.Description != "Black sand." {
		t.Errorf("unexpected beach: %+v", g.NearestBeach)
	}

	if len(g.FoodAndDrink) != 2 {
		t.Fatalf("expected 2 food items, got %d", len(g.FoodAndDrink))
	}
	if g.FoodAndDrink[0].Type != "dish" || g.FoodAndDrink[1].Type != "drink" {
		t.Errorf("unexpected food types: %+v", g.FoodAndDrink)
	}

	if len(g.InsiderTips) != 2 || g.InsiderTips[1] != "The market is busiest before noon." {
		t.Errorf("unexpected tips: %v", g.InsiderTips)
	}

	if len(g.FAQ) != 2 {
		t.Fatalf("expected 2 FAQ entries, got %d", len(g.FAQ))
	}
	if g.FAQ[0].Question != "Can I walk into town?" {
		t.Errorf("unexpected question %q", g.FAQ[0].Question)
	}
	if g.FAQ[0].Answer != "Yes, it takes about fifteen minutes. The route is flat." {
		t.Errorf("unexpected answer %q", g.FAQ[0].Answer)
	}
	if g.FAQ[1].Answer != "Sometimes." {
		t.Errorf("unexpected second answer %q", g.FAQ[1].Answer)
	}

	if g.ContentOverview != "Funchal overview." || g.ContentStayLocal != "Stay near the marina." || g.ContentAccessibility != "Lifts at the terminal." {
		t.Errorf("unexpected content sections: %q %q %q", g.ContentOverview, g.ContentStayLocal, g.ContentAccessibility)
	}
	if g.ContentMedical != "" || g.ContentWithKids != "" {
		t.Errorf("expected untouched content fields to stay empty")
	}

	if g.MetaTitle != "Funchal Cruise Port" {
		t.Errorf("expected explicit meta title, got %q", g.MetaTitle)
	}
	if !strings.HasPrefix(g.MetaDescription, "Funchal sits on a natural amphitheatre.") {
		t.Errorf("expected derived meta description, got %q", g.MetaDescription)
	}
}

func TestParse_Idempotent(t *testing.T) {
	a := Parse(fullGuide, Options{})
	b := Parse(fullGuide, Options{})
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical records from identical input")
	}
}

func TestParse_ScalarOverwrite(t *testing.T) {
	g := Parse("# X\n## Basic Information\n- Slug: a\n- Slug: b\n", Options{})
	if g.Slug != "b" {
		t.Errorf("expected last slug to win, got %q", g.Slug)
	}
}

func TestParse_EmptyValueIsStored(t *testing.T) {
	g := Parse("## Basic Information\n- Country: Spain\n- Country:\n", Options{})
	if g.Country != "" {
		t.Errorf("expected empty value to overwrite, got %q", g.Country)
	}
}

func TestParse_ListFlushDiscipline(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"last item at end of document", "## Must-See Sights\n1. **A**\n2. **B**\n3. **C**", 3},
		{"flushed by next section", "## Must-See Sights\n1. **A**\n- Duration: 1h\n2. **B**\n## Meta\n", 2},
		{"flushed by subsection", "## Must-See Sights\n1. **A**\n### Extra\n- Duration: 1h\n", 1},
		{"bullets before any header", "## Must-See Sights\n- Duration: 1h\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Parse(tt.doc, Options{})
			if len(g.MustSeeSights) != tt.want {
				t.Errorf("expected %d sights, got %d", tt.want, len(g.MustSeeSights))
			}
		})
	}
}

func TestParse_SubsectionClosesOpenItem(t *testing.T) {
	g := Parse("## Must-See Sights\n1. **A**\n### Notes\n- Duration: 3h\n", Options{})
	if len(g.MustSeeSights) != 1 {
		t.Fatalf("expected 1 sight, got %d", len(g.MustSeeSights))
	}
	if g.MustSeeSights[0].Duration != "" {
		t.Errorf("expected bullet after subsection to be ignored, got %q", g.MustSeeSights[0].Duration)
	}
}

func TestParse_DefaultCoordinates(t *testing.T) {
	g := Parse("## Basic Information\n- Coordinates: not-a-number, -16.9\n", Options{})
	if g.Coordinates.Lat != 0 || g.Coordinates.Lon != -16.9 {
		t.Errorf("unexpected coordinates: %+v", g.Coordinates)
	}
}

func TestParse_ParagraphPreservation(t *testing.T) {
	g := Parse("## Description\nFirst line.\nSecond line.\n\n\nThird line.\n\n", Options{})
	want := "First line.\nSecond line.\n\nThird line."
	if g.Description != want {
		t.Errorf("expected %q, got %q", want, g.Description)
	}
	if strings.Count(g.Description, "\n\n") != 1 {
		t.Errorf("expected exactly one paragraph break in %q", g.Description)
	}
}

func TestParse_MetaDefaulting(t *testing.T) {
	desc := strings.Repeat("abcdefghij", 30)
	g := Parse("# Long Port\n## Description\n"+desc+"\n", Options{SiteName: "Sea Days"})

	if len([]rune(g.MetaDescription)) != 160 {
		t.Errorf("expected 160 runes, got %d", len([]rune(g.MetaDescription)))
	}
	if g.MetaDescription != desc[:160] {
		t.Errorf("expected hard cut of description")
	}
	if !strings.Contains(g.MetaTitle, "Long Port") {
		t.Errorf("expected meta title to contain name, got %q", g.MetaTitle)
	}
	if !strings.HasSuffix(g.MetaTitle, "| Sea Days") {
		t.Errorf("expected configured site name, got %q", g.MetaTitle)
	}
}

func TestParse_ExplicitEmptyMetaIsKept(t *testing.T) {
	doc := "# Funchal\n## Description\nBody text.\n## Meta\n- Title:\n- Description:\n"
	g := Parse(doc, Options{})
	if g.MetaTitle != "" {
		t.Errorf("expected empty meta title to be kept, got %q", g.MetaTitle)
	}
	if g.MetaDescription != "" {
		t.Errorf("expected empty meta description to be kept, got %q", g.MetaDescription)
	}
}

func TestParse_ExplicitMetaOverridesDefaults(t *testing.T) {
	doc := "# Funchal\n## Description\nBody text.\n## Meta\n- Meta Title: Funchal, Madeira\n- Meta Description: Gateway to Madeira.\n"
	g := Parse(doc, Options{})
	if g.MetaTitle != "Funchal, Madeira" {
		t.Errorf("expected explicit meta title, got %q", g.MetaTitle)
	}
	if g.MetaDescription != "Gateway to Madeira." {
		t.Errorf("expected explicit meta description, got %q", g.MetaDescription)
	}
}

func TestParse_NoNameNoMetaTitle(t *testing.T) {
	g := Parse("## Basic Information\n- Slug: x\n", Options{})
	if g.MetaTitle != "" {
		t.Errorf("expected no meta title without a name, got %q", g.MetaTitle)
	}
}

func TestParse_UnknownSectionDropped(t *testing.T) {
	g := Parse("# X\n## Secret Notes\n- Slug: leaked\nprose\n## Description\nKept.\n", Options{})
	if g.Slug != "" {
		t.Errorf("expected unknown section content to be dropped, got slug %q", g.Slug)
	}
	if g.Description != "Kept." {
		t.Errorf("expected description after unknown section, got %q", g.Description)
	}
}

func TestParse_ExplicitPortNameSection(t *testing.T) {
	g := Parse("## Port Name\nValletta\n", Options{})
	if g.Name != "Valletta" {
		t.Errorf("expected name from Port Name section, got %q", g.Name)
	}
}

func TestParse_PortNameSectionIgnoresFollowingProse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bare title then prose", "## Port Name\nFunchal\nSecond line\n", "Funchal"},
		{"heading title then prose", "## Port Name\n# Funchal\nCapital of Madeira.\n", "Funchal"},
		{"later heading title wins", "## Port Name\nFunchal\n# Funchal, Madeira\n", "Funchal, Madeira"},
		{"preamble prose is ignored", "# Funchal\nA sunny island port.\n", "Funchal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Parse(tt.doc, Options{})
			if g.Name != tt.want {
				t.Errorf("expected name %q, got %q", tt.want, g.Name)
			}
		})
	}
}

func TestParse_ByteOrderMarkedDocumentKeepsName(t *testing.T) {
	g := Parse("\ufeff# Funchal\n## Basic Information\n- Slug: funchal\n", Options{})
	if g.Name != "Funchal" {
		t.Errorf("expected name %q, got %q", "Funchal", g.Name)
	}
	if g.MetaTitle != "Funchal Cruise Port Guide | Limitless Cruises" {
		t.Errorf("unexpected meta title %q", g.MetaTitle)
	}
}

func TestParse_ContentSectionsExactMatch(t *testing.T) {
	g := Parse("## Content Sections\n### Accessibility Notes\nRamps.\n### Medical\nPharmacy.\n", Options{})
	if g.ContentAccessibility != "" {
		t.Errorf("expected non-exact subsection to be ignored, got %q", g.ContentAccessibility)
	}
	if g.ContentMedical != "Pharmacy." {
		t.Errorf("expected medical content, got %q", g.ContentMedical)
	}
}

func TestParse_EmptyDocumentEncodesWithoutNulls(t *testing.T) {
	g := Parse("", Options{})
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("expected no null values, got %s", data)
	}
	if !strings.Contains(string(data), `"aboutPort":{}`) {
		t.Errorf("expected empty aboutPort object, got %s", data)
	}
	if !strings.Contains(string(data), `"quickFacts":{}`) {
		t.Errorf("expected empty quickFacts object, got %s", data)
	}
}
