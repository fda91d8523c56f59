package synth

import "github.com/couchcryptid/nyc-live-events/internal/domain"

var titlesByCategory = map[domain.Category][]string{
	domain.CategoryMusic: {
		"Live Jazz Night", "Hip Hop Showcase", "Indie Rock Concert", "EDM Festival", "Classical Symphony",
		"Acoustic Session", "Battle of the Bands", "Songwriter Circle", "Record Release Party",
		"Album Listening Event", "Jazz Brunch", "Open Mic Night", "Summer Jam",
	},
	domain.CategoryArts: {
		"Broadway Show", "Art Gallery Opening", "Modern Dance", "Opera Night", "Poetry Slam",
		"Film Screening", "Documentary Night", "Short Film Festival", "Animation Showcase",
		"Musical Theater", "Cabaret Show", "Graffiti Tour", "Street Art Walk", "Mural Painting",
		"Public Art Unveiling", "Sculpture Garden", "Photography Walk", "Fashion Week Showcase",
		"Literary Reading", "Author Q&A", "Opera Workshop", "Pottery Class", "Painting Session",
		"Drawing Circle", "Digital Art Demo",
	},
	domain.CategoryFood: {
		"Food Truck Festival", "Wine Tasting", "Craft Beer Night", "Restaurant Week", "Cooking Class",
		"Soul Food Sunday", "Taco Tuesday", "Whiskey Wednesday", "Farmers Market", "Organic Market",
		"Cheese Tasting", "Chocolate Workshop", "Coffee Cupping", "BBQ Cookout", "Thanksgiving Potluck",
	},
	domain.CategorySports: {
		"Knicks Game", "Yankees Game", "Basketball Tournament", "Marathon", "Mets Game", "Nets Game",
		"Rangers Game", "Soccer Match", "Rugby Tournament", "Video Game Tournament", "Esports Viewing Party",
	},
	domain.CategoryNightlife: {
		"Rooftop Party", "Club Night", "Speakeasy Experience", "DJ Set", "Late Night Dance",
		"Sunset Rooftop Sessions", "Underground House Party", "Karaoke Night", "Throwback Thursday",
		"Latin Dance Party", "Salsa Night", "Bachata Lessons", "Merengue Fest", "Reggaeton Bash",
		"Drag Show", "Burlesque Night", "Halloween Party", "Masquerade Ball", "New Years Eve Bash",
		"Pool Party", "Theme Party", "Valentine Dance",
	},
	domain.CategoryComedy: {
		"Comedy Club Night", "Stand-up Showcase", "Improv Comedy", "Roast Battle", "Variety Show",
		"Trivia Competition", "Costume Contest",
	},
	domain.CategoryCommunity: {
		"Neighborhood Meetup", "Block Party", "Volunteer Day", "Cultural Festival", "Street Fair",
		"Vintage Market", "Flea Market Sunday", "Artisan Fair", "Designer Pop-Up", "Book Club Meeting",
		"Writing Workshop", "Bookstore Event", "Fundraiser Gala", "Charity Auction", "Community Cleanup",
		"Food Drive", "Donation Event", "Pet Adoption Fair", "Dog Park Meetup", "Cat Cafe Event",
		"Animal Rescue", "Pride Parade", "LGBTQ+ Mixer", "Queer Art Show", "Rainbow Festival",
		"Community Pride", "Carnival", "Parade", "Fireworks Show", "Holiday Market", "Winter Festival",
		"Spring Fling", "Fall Harvest", "Board Game Night", "Dungeons & Dragons", "Retro Gaming",
		"Stargazing Night", "Twilight Walk", "Garden Party", "Picnic in the Park", "Beach Party",
	},
	domain.CategoryTechBiz: {
		"Startup Pitch Night", "Tech Meetup", "Hackathon", "Product Launch", "Networking Event",
		"Startup Demo Day", "VC Pitch Event", "Innovation Summit", "Blockchain Talk", "AI Workshop",
	},
	domain.CategoryFitness: {
		"Yoga in the Park", "CrossFit Session", "Running Club", "Spin Class", "Boxing Workout",
		"HIIT Training", "Pilates Class", "Barre Workout", "Zumba Party", "Dance Fitness", "Aerial Yoga",
		"Meditation Circle", "Sound Bath", "Breathwork Session", "Wellness Workshop", "Holistic Healing",
		"Sunrise Yoga", "Moonlight Meditation", "Dawn Run",
	},
	domain.CategoryFamily: {
		"Kids Workshop", "Family Movie Night", "Museum Day", "Puppet Show", "Story Time", "Science Fair",
		"STEM Workshop", "Robotics Demo", "Space Talk", "Nature Walk", "Pet Costume Party",
	},
}

// allTitles is the combined pool used by the flat variant.
var allTitles = func() []string {
	var out []string
	for _, c := range domain.Categories() {
		out = append(out, titlesByCategory[c]...)
	}
	return out
}()

var venuesByBorough = map[domain.Borough][]string{
	domain.Manhattan: {
		"Madison Square Garden", "Blue Note", "Bryant Park", "Lincoln Center", "Chelsea Market",
		"Webster Hall", "Comedy Cellar", "Union Square", "Bowery Ballroom", "Rockefeller Center",
	},
	domain.Brooklyn: {
		"Barclays Center", "Brooklyn Mirage", "Prospect Park", "Brooklyn Museum", "Elsewhere",
		"Brooklyn Steel", "Smorgasburg Williamsburg", "Domino Park",
	},
	domain.Queens: {
		"Citi Field", "Flushing Meadows", "MoMA PS1", "Astoria Park", "Queens Museum",
		"Forest Hills Stadium", "Rockaway Beach",
	},
	domain.Bronx: {
		"Yankee Stadium", "Bronx Zoo", "New York Botanical Garden", "Pelham Bay Park", "Orchard Beach",
		"Bronx Museum of the Arts",
	},
	domain.StatenIsland: {
		"St. George Theatre", "Snug Harbor", "Staten Island Zoo", "Richmond County Bank Ballpark",
		"Conference House Park",
	},
}

var streetsByBorough = map[domain.Borough][]string{
	domain.Manhattan: {
		"Broadway", "Park Ave", "5th Avenue", "Madison Ave", "Lexington Ave", "3rd Avenue",
		"Amsterdam Ave", "Columbus Ave", "West End Ave", "Riverside Dr", "Central Park West",
	},
	domain.Brooklyn:     {"Bedford Ave", "Flatbush Ave", "Atlantic Ave", "Fulton St", "DeKalb Ave", "Myrtle Ave"},
	domain.Queens:       {"Queens Blvd", "Roosevelt Ave", "Northern Blvd", "Astoria Blvd", "Steinway St"},
	domain.Bronx:        {"Grand Concourse", "Fordham Rd", "Jerome Ave", "Webster Ave", "White Plains Rd"},
	domain.StatenIsland: {"Victory Blvd", "Forest Ave", "Bay St", "Richmond Ave", "Hylan Blvd"},
}

// PriceLadder holds the flat-rate price labels.
var PriceLadder = []string{"$15", "$25", "$35", "$50"}

// Free is the price label for events without a ticket price.
const Free = "Free"
