// Package portguide defines the port guide record built from authored
// Markdown and persisted by the store implementations.
package portguide

// Default status values for a freshly parsed guide.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// PortGuide is the structured record for a single cruise port.
type PortGuide struct {
	Name          string      `json:"name"`
	DisplayName   string      `json:"displayName"`
	Slug          string      `json:"slug"`
	Country       string      `json:"country"`
	Region        string      `json:"region"`
	Tagline       string      `json:"tagline"`
	PortCharacter string      `json:"portCharacter"`
	Description   string      `json:"description"`
	Coordinates   Coordinates `json:"coordinates"`

	AboutPort            TextBlock `json:"aboutPort"`
	QuickFacts           Facts     `json:"quickFacts"`
	TransportConnections TextBlock `json:"transportConnections"`
	GettingAround        TextBlock `json:"gettingAround"`

	MustSeeSights   []Sight     `json:"mustSeeSights"`
	ShoreExcursions []Excursion `json:"shoreExcursions"`
	NearestBeach    Beach       `json:"nearestBeach"`
	FoodAndDrink    []FoodItem  `json:"foodAndDrink"`
	InsiderTips     []string    `json:"insiderTips"`
	Weather         Facts       `json:"weather"`
	FAQ             []FAQItem   `json:"faq"`
	PracticalInfo   Facts       `json:"practicalInfo"`

	ContentOverview      string `json:"contentOverview"`
	ContentStayLocal     string `json:"contentStayLocal"`
	ContentGoFurther     string `json:"contentGoFurther"`
	ContentWithKids      string `json:"contentWithKids"`
	ContentAccessibility string `json:"contentAccessibility"`
	ContentMedical       string `json:"contentMedical"`
	ContentFoodDrink     string `json:"contentFoodDrink"`

	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`

	Status     string `json:"status"`
	ShowInMenu bool   `json:"showInMenu"`
	IsComplete bool   `json:"isComplete"`
}

// Coordinates is a latitude/longitude pair. The zero value is 0,0.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TextBlock wraps a free-text field. An empty block encodes as {}.
type TextBlock struct {
	Text string `json:"text,omitempty"`
}

// Sight is one entry of the must-see list.
type Sight struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Tips        string   `json:"tips"`
	Highlights  []string `json:"highlights"`
	GoodFor     []string `json:"goodFor"`
}

// Excursion is one bookable shore excursion.
type Excursion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	BookWith    string `json:"bookWith"`
	Notes       string `json:"notes"`
}

// Beach describes the beach closest to the terminal.
type Beach struct {
	Name        string `json:"name"`
	Distance    string `json:"distance"`
	Description string `json:"description"`
}

// FoodItem is a dish, drink or venue worth trying.
type FoodItem struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// FAQItem is a question with its accumulated answer.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// New returns an empty guide with list fields pre-seeded so they encode as
// [] rather than null.
func New() *PortGuide {
	return &PortGuide{
		QuickFacts:      Facts{},
		MustSeeSights:   []Sight{},
		ShoreExcursions: []Excursion{},
		FoodAndDrink:    []FoodItem{},
		InsiderTips:     []string{},
		Weather:         Facts{},
		FAQ:             []FAQItem{},
		PracticalInfo:   Facts{},
		Status:          StatusDraft,
	}
}

// Summary is the normalized projection returned after persistence.
type Summary struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Status  string `json:"status"`
}
