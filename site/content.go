// Package site renders the studio portfolio on the motion runtime: a
// scrolling page of sections whose animations follow scroll progress.
package site

import (
	"fmt"
	"strings"
)

// Project is one portfolio entry.
type Project struct {
	ID          int
	Title       string
	Category    string
	Description string
	Year        string
	Download    bool
}

// Details are the technical notes shown when a project is examined.
type Details struct {
	Measurement string
	Concept     string
	Media       string
}

var (
	measurements = []string{"42x59 cm", "Custom Fit", "300x360 cm", "1920x1080", "180x90 cm"}
	concepts     = []string{"Minimalist", "Deconstruct", "Organic", "Geometric", "Fluidity"}
	mediaTypes   = []string{"Graphite / Ink", "Tech Silk / Nylon", "Vector / Digital", "Charcoal / Paper", "3D Render / CLO"}
)

// Details picks the project's notes from its title length.
func (p Project) Details() Details {
	i := len(p.Title) % len(measurements)
	return Details{Measurement: measurements[i], Concept: concepts[i], Media: mediaTypes[i]}
}

// Dimensions splits the measurement into width and height labels.
func (d Details) Dimensions() (width, height string) {
	width, height, ok := strings.Cut(d.Measurement, "x")
	if !ok {
		return d.Measurement, "Auto"
	}
	return width, height
}

// TimelineEvent is one milestone.
type TimelineEvent struct {
	Year  string
	Title string
	Desc  string
}

// Testimonial is a client quote.
type Testimonial struct {
	Text   string
	Author string
	Role   string
}

// Initials returns the avatar letters for the author.
func (t Testimonial) Initials() string {
	var b strings.Builder
	for _, field := range strings.Fields(t.Author) {
		for _, r := range field {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// Stat is a labelled figure on the featured project.
type Stat struct {
	Value string
	Label string
}

// Featured is the highlighted collection.
type Featured struct {
	Title       string
	Description string
	Stats       []Stat
}

// ProcessStep is one phase of a project deconstruction.
type ProcessStep struct {
	Title string
	Desc  string
}

// Content is everything the page displays.
type Content struct {
	Name         string
	Title        string
	Tagline      string
	Bio          []string
	Roles        []string
	Timeline     []TimelineEvent
	Projects     []Project
	Archive      []Project
	Testimonials []Testimonial
	Featured     Featured
	Process      []ProcessStep
}

// Categories are the portfolio filters, in display order.
var Categories = []string{"Garment", "Textile", "Sketches", "Illustration"}

// FilterAll matches every category.
const FilterAll = "All"

// Filters returns the portfolio filter cycle.
func Filters() []string {
	return append([]string{FilterAll}, Categories...)
}

var generatedTitles = []string{
	"Tension", "Velocity", "Balance", "Torque", "Pivot", "Vault", "Landing", "Grip", "Chalk",
	"Rhythm", "Axis", "Flex", "Momentum", "Apex", "Form", "Structure", "Dynamic",
}

// GenerateProjects builds count filler projects numbered from startID.
func GenerateProjects(startID, count int) []Project {
	out := make([]Project, 0, max(count, 0))
	for i := 0; i < count; i++ {
		category := Categories[i%len(Categories)]
		title := fmt.Sprintf("%s %d", generatedTitles[i%len(generatedTitles)], i+1)
		out = append(out, Project{
			ID:          startID + i,
			Title:       strings.ToUpper(title),
			Category:    category,
			Description: fmt.Sprintf("Exploration of %s dynamics through the lens of athletic performance.", strings.ToLower(category)),
			Year:        fmt.Sprint(2020 + i%5),
		})
	}
	return out
}

// ArchiveProjects builds the concepts revealed by "load complete archive".
func ArchiveProjects(startID, count int) []Project {
	out := make([]Project, 0, max(count, 0))
	for i := 0; i < count; i++ {
		category := Categories[i%len(Categories)]
		id := startID + i
		out = append(out, Project{
			ID:          id,
			Title:       fmt.Sprintf("Concept %d", id),
			Category:    category,
			Description: fmt.Sprintf("Experimental concept focusing on %s principles and form.", strings.ToLower(category)),
			Year:        fmt.Sprint(2020 + i%5),
		})
	}
	return out
}

// FilterProjects returns the projects in category, or all of them for
// FilterAll.
func FilterProjects(projects []Project, category string) []Project {
	if category == "" || category == FilterAll {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// DefaultContent returns the studio's content.
func DefaultContent() Content {
	curated := []Project{
		{
			ID:          1,
			Title:       "SIMPSON TEXTILES",
			Category:    "Garment",
			Description: "Experimental approach to wearable architecture using reclaimed materials and gymnastic tension principles.",
			Year:        "2025",
			Download:    true,
		},
		{
			ID:          2,
			Title:       "FORM & FLOW",
			Category:    "Sketches",
			Description: "Digital explorations of human movement translated into vector geometry and fluid color palettes.",
			Year:        "2024",
		},
		{
			ID:          3,
			Title:       "AERODYNAMIC BRANDING",
			Category:    "Garment",
			Description: "A complete identity for a high-performance athletic apparel brand, focused on speed and minimal wind resistance.",
			Year:        "2025",
		},
	}
	projects := append(curated, GenerateProjects(4, 17)...)

	return Content{
		Name:    "Amy Simpson",
		Title:   "PORTFOLIO",
		Tagline: "Precision Meets Performance",
		Bio: []string{
			"I believe in the tactility of design. From the texture of raw fabric to the stroke of a charcoal pencil, my work is grounded in material reality.",
			"My background in sewing and textile art allows me to construct garments that tell stories. I approach every project with a focus on structure, form, and the human experience.",
		},
		Roles: []string{"Visual Artist", "Designer", "Environmental Designer", "Architecture", "Illustrator", "Fashion"},
		Timeline: []TimelineEvent{
			{"2025", "Simpson Studio Launch", "Founded a multidisciplinary design studio at the intersection of athletic performance and visual identity."},
			{"2023", "Artistic Excellence Award", "Recognized for innovation in wearable technology and material science at the National Design Forum."},
			{"2021", "Lead Pattern Designer", "Developed ergonomic seam technologies for Vertex Athletics, reducing garment friction by 40%."},
			{"2019", "Parsons Graduation", "BFA in Fashion Design with a thesis on \"Structural Integrity in Motion\"."},
			{"2016", "State Championship", "Gold Medalist in Floor Exercise. The discipline learned here defines my design rigor today."},
			{"2014", "The First Prototype", "Began customizing competition leotards, discovering the dialogue between fabric and physique."},
		},
		Projects: projects,
		Archive:  ArchiveProjects(len(projects)+1, 12),
		Testimonials: []Testimonial{
			{"Amy brings a rare sensitivity to materials. Her designs aren't just clothes; they are architectural softness.", "Elena Rossi", "Creative Director, Aura"},
			{"Working with Amy was a revelation. She understood our brand's core immediately and translated it into a visual language that speaks volumes.", "Marcus Chen", "Founder, Zenith"},
			{"The attention to detail is unparalleled. From the initial sketch to the final stitch, every step is deliberate and artistic.", "Sarah Jenkins", "Fashion Editor, Vogue"},
			{"She doesn't just design; she solves problems with elegance. A true multidisciplinary talent.", "David Thorne", "Product Lead, Stripe"},
		},
		Featured: Featured{
			Title:       "TITANIUM FLOW COLLECTION",
			Description: "The crown jewel of current collection. Exploring the weightlessness of metallic fabrics in a 6-minute floor routine simulation.",
			Stats:       []Stat{{"01", "Unique"}, {"100%", "Handcrafted"}},
		},
		Process: []ProcessStep{
			{"Simpson Sketch", "Initial translation of gymnastic floor routine movements into 2D structural planes."},
			{"Material Tension", "Selecting high-performance technical fabrics that maintain form under extreme physical stress."},
			{"S-Curve Draping", "Adjusting the grainline to follow the natural torque of a twisting torso."},
			{"Final Landing", "The intersection of aesthetic perfection and unhindered athletic mobility."},
		},
	}
}
