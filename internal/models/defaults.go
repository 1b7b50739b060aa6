package models

// DefaultDocument returns the built-in content used when no content file exists.
// Projects are stored newest first.
func DefaultDocument() *Document {
	return &Document{
		Site: Site{
			Brand:     "Studio North",
			BadgeYear: "2024",
		},
		Hero: Hero{
			FirstName: "Alex",
			LastName:  "Morgan",
			Subtitle:  "Product designer crafting clear, useful interfaces.",
		},
		Social: Social{
			Email: "hello@example.com",
			Links: []Link{
				{Label: "LinkedIn", URL: "https://www.linkedin.com/"},
				{Label: "Behance", URL: "https://www.behance.net/"},
				{Label: "Dribbble", URL: "https://dribbble.com/"},
			},
		},
		Projects: []Project{
			{
				ID:           "p04",
				Number:       "04",
				Title:        "JobID",
				Category:     "Product Design",
				Overview:     "A case study on helping job seekers identify roles that match their skills.",
				Image:        "https://images.unsplash.com/photo-1545239351-1141bd82e8a6?auto=format&fit=crop&w=1600&q=80",
				Color:        "blue",
				Deliverables: []string{"User Research", "Wireframing", "UI Design"},
			},
			{
				ID:           "p03",
				Number:       "03",
				Title:        "Harbor Finance",
				Category:     "Mobile App",
				Overview:     "A budgeting app that turns monthly statements into plain-language summaries.",
				Image:        "https://images.unsplash.com/photo-1554224155-6726b3ff858f?auto=format&fit=crop&w=1600&q=80",
				Color:        "green",
				Deliverables: []string{"Information Architecture", "Prototyping", "Usability Testing"},
			},
			{
				ID:           "p02",
				Number:       "02",
				Title:        "Fieldnotes",
				Category:     "Brand Identity",
				Overview:     "Identity system for an independent publisher of travel journals.",
				Image:        "https://images.unsplash.com/photo-1455390582262-044cdead277a?auto=format&fit=crop&w=1600&q=80",
				Color:        "orange",
				Deliverables: []string{"Logo", "Typography", "Print Collateral"},
			},
			{
				ID:           "p01",
				Number:       "01",
				Title:        "SNP Website Redesign",
				Category:     "Website Design",
				Overview:     "A redesign concept focused on showcasing spaces and the team behind them.",
				Image:        "https://images.unsplash.com/photo-1524758631624-e2822e304c36?auto=format&fit=crop&w=1600&q=80",
				Color:        "purple",
				Deliverables: []string{"Homepage layout", "Team section", "Responsive behavior"},
			},
		},
	}
}
