package models

// Default catalog used to seed an empty local store and as the starting
// ticket template for new events in the admin form.

// Placeholder artwork applied when the admin leaves image fields blank.
const (
	DefaultEventImageURL = "https://images.unsplash.com/photo-1568605117036-5fe5e7bab0b7?auto=format&fit=crop&q=80"
	DefaultFlagURL       = "https://upload.wikimedia.org/wikipedia/commons/e/ec/F1_chequered_flag.svg"
)

// DefaultTickets returns a fresh copy of the four-tier ticket template.
func DefaultTickets() []Ticket {
	return CloneTickets([]Ticket{
		{
			ID:        "main-grandstand",
			Name:      "Main Grandstand",
			Category:  CategoryMainGrandstand,
			Price:     650,
			Currency:  "€",
			Available: true,
			ImageURL:  "https://media.formula1.com/image/upload/f_auto,c_limit,w_960,q_auto/content/dam/fom-website/2018-redesign-assets/Racehub%202018/Qatar%20GP/Qatar%20GP%202021%20Main%20Grandstand",
			Description: "Overlooking the start/finish line, the Main Grandstand offers an exceptional view of the " +
				"pre-race grid preparations, the dramatic start, and the checkered flag finish.",
			Features: []string{"Giant Screen", "Numbered Seating"},
			Format:   "3-day E-ticket",
		},
		{
			ID:        "north-grandstand",
			Name:      "North Grandstand",
			Category:  CategoryNorthGrandstand,
			Price:     450,
			Currency:  "€",
			Available: true,
			ImageURL:  "https://www.grandprixevents.com/media/wysiwyg/qatar_f1_north_grandstand.jpg",
			Description: "Located after Turn 1, the North Grandstand provides views of the cars braking hard into " +
				"the first corner, a key overtaking spot.",
			Features: []string{"Giant Screen"},
			Format:   "3-day E-ticket",
		},
		{
			ID:        "t2-grandstand",
			Name:      "T2 Grandstand",
			Category:  CategoryT2Grandstand,
			Price:     320,
			Currency:  "€",
			Available: false,
			ImageURL:  "https://dve-images.imggaming.com/original/dve-images/OC_T2_Grandstand_Hero_Image_1.jpg",
			Description: "Positioned at the exit of Turn 2, this stand offers a great perspective on the cars " +
				"accelerating out of the opening complex.",
			Features: []string{},
			Format:   "3-day E-ticket",
		},
		{
			ID:        "general-admission",
			Name:      "General Admission",
			Category:  CategoryGeneralAdmission,
			Price:     150,
			Currency:  "€",
			Available: true,
			ImageURL:  "https://www.gpt-worldwide.com/f1/img/qatar-f1-general-admission-2.jpg",
			Description: "Freedom to roam around various viewing areas. Find your favorite spot and enjoy the race " +
				"from different angles throughout the weekend.",
			Features: []string{},
			Format:   "3-day E-ticket",
		},
	})
}

// SeedEvents returns the fixed default catalog written into an empty local
// store on first read.
func SeedEvents() []Event {
	return []Event{
		{
			ID:       "qatar-grand-prix-2025",
			Name:     "Qatar Grand Prix",
			Location: "Lusail International Circuit",
			Date:     "2025-11-30",
			Year:     2025,
			ImageURL: "https://media.formula1.com/image/upload/f_auto,c_limit,w_1440,q_auto/content/dam/fom-website/2018-redesign-assets/Racehub%202018/Qatar%20GP/Qatar%20GP%202021%20Main%20Grandstand",
			FlagURL:  "https://upload.wikimedia.org/wikipedia/commons/thumb/6/65/Flag_of_Qatar.svg/1280px-Flag_of_Qatar.svg.png",
			Tickets:  DefaultTickets(),
		},
		{
			ID:       "italian-grand-prix-2025",
			Name:     "Italian Grand Prix",
			Location: "Monza Circuit",
			Date:     "2025-09-07",
			Year:     2025,
			ImageURL: "https://media.formula1.com/image/upload/f_auto,c_limit,w_1920,q_auto/content/dam/fom-website/2018-redesign-assets/Racehub%202018/Italy/2021-Race-Hub-Header-ITALY",
			FlagURL:  "https://upload.wikimedia.org/wikipedia/en/thumb/0/03/Flag_of_Italy.svg/1200px-Flag_of_Italy.svg.png",
			Tickets:  DefaultTickets(),
		},
	}
}
