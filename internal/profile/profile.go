// Package profile is the static content of the host page.
package profile

import "github.com/Garsondee/planetary-defense/internal/theme"

// Panel is one expandable entry on the page. Clicking it toggles the
// expanded slot in the theme coordinator and applies Theme.
type Panel struct {
	ID           theme.PanelID
	Heading      string
	Subheading   string
	Period       string
	Description  string
	Technologies []string
	Theme        theme.ID
	// Coop entries are hidden in TL;DR mode.
	Coop bool
}

// Profile is the page owner's summary.
type Profile struct {
	Name     string
	Title    string
	Bio      string
	Location string
	Email    string
	Skills   []string
	Links    map[string]string
	Panels   []Panel
}

// Default is the profile rendered by the hosts.
func Default() Profile {
	return Profile{
		Name:     "John Doe",
		Title:    "Senior Frontend Developer",
		Bio:      "Passionate frontend developer with 5+ years of experience in building modern web applications. Specialized in React, TypeScript, and modern UI frameworks.",
		Location: "San Francisco, CA",
		Email:    "john.doe@example.com",
		Skills:   []string{"React", "TypeScript", "Next.js", "TailwindCSS", "Node.js", "GraphQL", "REST APIs", "Git"},
		Links: map[string]string{
			"github":   "https://github.com/johndoe",
			"linkedin": "https://linkedin.com/in/johndoe",
			"twitter":  "https://twitter.com/johndoe",
		},
		Panels: []Panel{
			{
				ID:          "education",
				Heading:     "University of Waterloo",
				Subheading:  "Bachelor of Applied Science, Computer Engineering",
				Period:      "2012 - 2017",
				Description: "Computer engineering with a focus on embedded and distributed systems.",
				Theme:       theme.UWaterloo,
			},
			{
				ID:           "roblox",
				Heading:      "Roblox",
				Subheading:   "Senior Software Engineer",
				Period:       "2021 - Present",
				Description:  "Creator tooling and the web surfaces that ship it.",
				Technologies: []string{"TypeScript", "React", "Go"},
				Theme:        theme.Roblox,
			},
			{
				ID:           "oanda",
				Heading:      "OANDA",
				Subheading:   "Software Engineer",
				Period:       "2017 - 2021",
				Description:  "Trading dashboards with live market data.",
				Technologies: []string{"React", "Redux", "WebSockets"},
				Theme:        theme.Oanda,
			},
			{
				ID:           "imagine",
				Heading:      "Imagine Communications",
				Subheading:   "Software Engineering Co-op",
				Period:       "2016",
				Description:  "Operator consoles for broadcast playout systems.",
				Technologies: []string{"JavaScript", "C++"},
				Theme:        theme.Imagine,
				Coop:         true,
			},
			{
				ID:           "escrypt",
				Heading:      "ESCRYPT",
				Subheading:   "Embedded Security Co-op",
				Period:       "2015",
				Description:  "Test tooling for automotive security modules.",
				Technologies: []string{"C", "Python"},
				Theme:        theme.Escrypt,
				Coop:         true,
			},
			{
				ID:           "thomson",
				Heading:      "Thomson Reuters",
				Subheading:   "Software Developer Co-op",
				Period:       "2015",
				Description:  "Internal web applications for content teams.",
				Technologies: []string{"Java", "JavaScript"},
				Theme:        theme.Thomson,
				Coop:         true,
			},
			{
				ID:           "hubhead",
				Heading:      "HubHead",
				Subheading:   "Web Developer Co-op",
				Period:       "2014",
				Description:  "Front end for a metadata management product.",
				Technologies: []string{"JavaScript", "CSS"},
				Theme:        theme.HubHead,
				Coop:         true,
			},
			{
				ID:           "windriver",
				Heading:      "Wind River",
				Subheading:   "Software Engineering Co-op",
				Period:       "2013",
				Description:  "Build and test automation for an embedded OS.",
				Technologies: []string{"Python", "Linux"},
				Theme:        theme.WindRiver,
				Coop:         true,
			},
		},
	}
}

// Visible returns the panels shown in the given mode.
func (p Profile) Visible(tldr bool) []Panel {
	if !tldr {
		return p.Panels
	}
	out := make([]Panel, 0, len(p.Panels))
	for _, panel := range p.Panels {
		if !panel.Coop {
			out = append(out, panel)
		}
	}
	return out
}

// Panel looks up a panel by ID.
func (p Profile) Panel(id theme.PanelID) (Panel, bool) {
	for _, panel := range p.Panels {
		if panel.ID == id {
			return panel, true
		}
	}
	return Panel{}, false
}

// Toggle clicks the n-th visible panel (0-based) on c. It reports false
// when n is out of range.
func (p Profile) Toggle(c *theme.Coordinator, tldr bool, n int) (bool, error) {
	visible := p.Visible(tldr)
	if n < 0 || n >= len(visible) {
		return false, nil
	}
	panel := visible[n]
	if err := c.Toggle(panel.ID, panel.Theme); err != nil {
		return false, err
	}
	return true, nil
}
