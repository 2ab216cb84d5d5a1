package selector

import (
	"strings"

	"github.com/exotic-travel-booking/backend/internal/models"
)

// bundledCityDNA holds hand-authored fallback descriptors for cities that
// come up often enough to deserve real data instead of the generic
// continental fallback. Keys are lowercased city names.
var bundledCityDNA = map[string]models.CityDNA{
	"madrid": {
		FoodTypicals:  []models.TypicalItem{{Name: "Bocadillo de calamares", When: []string{"midday"}}, {Name: "Cocido madrileño", When: []string{"midday"}}, {Name: "Tortilla de patatas"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Vermut", When: []string{"midday", "afternoon"}}, {Name: "Caña de cerveza"}},
		LocalKeywords: []string{"tapas", "mercado", "vermuteria"},
		Etiquette:     []string{"Dinner rarely starts before 9pm"},
	},
	"barcelona": {
		FoodTypicals:  []models.TypicalItem{{Name: "Pan con tomate"}, {Name: "Fideuà"}, {Name: "Crema catalana"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Vermut"}, {Name: "Cava"}},
		LocalKeywords: []string{"tapas", "vermuteria", "mercat"},
	},
	"paris": {
		FoodTypicals:  []models.TypicalItem{{Name: "Croissant", When: []string{"morning"}}, {Name: "Steak frites"}, {Name: "Crêpe"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Natural wine"}, {Name: "Café crème"}},
		LocalKeywords: []string{"bistro", "boulangerie", "brasserie"},
	},
	"london": {
		FoodTypicals:  []models.TypicalItem{{Name: "Sunday roast", When: []string{"midday"}}, {Name: "Fish and chips"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Cask ale"}, {Name: "Gin and tonic"}},
		LocalKeywords: []string{"pub", "gastropub", "market"},
	},
	"rome": {
		FoodTypicals:  []models.TypicalItem{{Name: "Cacio e pepe"}, {Name: "Supplì"}, {Name: "Gelato"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Aperol spritz", When: []string{"evening"}}, {Name: "Espresso"}},
		LocalKeywords: []string{"trattoria", "enoteca", "gelateria"},
	},
	"lisbon": {
		FoodTypicals:  []models.TypicalItem{{Name: "Pastel de nata"}, {Name: "Bacalhau"}, {Name: "Sardinhas"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Ginjinha"}, {Name: "Vinho verde"}},
		LocalKeywords: []string{"tasca", "miradouro"},
	},
	"berlin": {
		FoodTypicals:  []models.TypicalItem{{Name: "Currywurst"}, {Name: "Döner"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Pilsner"}, {Name: "Berliner Weisse"}},
		LocalKeywords: []string{"imbiss", "biergarten"},
	},
	"amsterdam": {
		FoodTypicals:  []models.TypicalItem{{Name: "Stroopwafel"}, {Name: "Bitterballen"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Jenever"}, {Name: "Tripel"}},
		LocalKeywords: []string{"brown cafe", "bruin café"},
	},
	"new york": {
		FoodTypicals:  []models.TypicalItem{{Name: "New York slice"}, {Name: "Bagel and lox", When: []string{"morning"}}},
		DrinkTypicals: []models.TypicalItem{{Name: "Craft cocktail"}, {Name: "Diner coffee"}},
		LocalKeywords: []string{"deli", "speakeasy"},
	},
	"tokyo": {
		FoodTypicals:  []models.TypicalItem{{Name: "Ramen"}, {Name: "Onigiri"}, {Name: "Yakitori", When: []string{"evening"}}},
		DrinkTypicals: []models.TypicalItem{{Name: "Highball"}, {Name: "Sake"}},
		LocalKeywords: []string{"izakaya", "depachika"},
	},
	"mexico city": {
		FoodTypicals:  []models.TypicalItem{{Name: "Tacos al pastor", When: []string{"evening", "late"}}, {Name: "Tlacoyos"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Mezcal"}, {Name: "Michelada"}},
		LocalKeywords: []string{"taqueria", "mercado"},
	},
	"buenos aires": {
		FoodTypicals:  []models.TypicalItem{{Name: "Asado"}, {Name: "Milanesa"}, {Name: "Medialunas", When: []string{"morning"}}},
		DrinkTypicals: []models.TypicalItem{{Name: "Malbec"}, {Name: "Fernet con cola"}},
		LocalKeywords: []string{"parrilla", "bodegon"},
	},
	"istanbul": {
		FoodTypicals:  []models.TypicalItem{{Name: "Simit", When: []string{"morning"}}, {Name: "Balık ekmek"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Çay"}, {Name: "Rakı"}},
		LocalKeywords: []string{"meyhane", "lokanta"},
	},
	"bangkok": {
		FoodTypicals:  []models.TypicalItem{{Name: "Pad kra pao"}, {Name: "Som tam"}, {Name: "Mango sticky rice"}},
		DrinkTypicals: []models.TypicalItem{{Name: "Thai iced tea"}, {Name: "Singha beer"}},
		LocalKeywords: []string{"street food stall", "night market"},
	},
}

// continentalKeywords maps a small keyword set per continental region to the
// substrings of a city (or "city, country") string that suggest it. Checked
// in declaration order, so more specific regions should precede broader ones
// if their keyword sets ever overlap.
var continentalKeywords = map[string][]string{
	"european": {
		"spain", "france", "italy", "germany", "portugal", "greece", "netherlands",
		"belgium", "austria", "switzerland", "poland", "ireland", "england", "uk",
		"scotland", "denmark", "norway", "sweden", "finland", "hungary", "croatia",
		"czech", "romania", "bulgaria",
		"madrid", "barcelona", "paris", "rome", "milan", "naples", "lisbon", "porto",
		"athens", "vienna", "zurich", "geneva", "brussels", "amsterdam", "rotterdam",
		"warsaw", "krakow", "prague", "budapest", "dublin", "edinburgh", "glasgow",
		"copenhagen", "oslo", "stockholm", "helsinki", "berlin", "munich", "hamburg",
		"frankfurt", "cologne",
	},
	"asian": {
		"china", "japan", "korea", "india", "vietnam", "thailand", "indonesia",
		"philippines", "singapore", "malaysia", "taiwan", "cambodia", "laos",
		"beijing", "shanghai", "shenzhen", "guangzhou", "hong kong", "tokyo",
		"osaka", "kyoto", "yokohama", "seoul", "busan", "mumbai", "delhi",
		"bangalore", "kolkata", "chennai", "hanoi", "ho chi minh", "bangkok",
		"chiang mai", "jakarta", "bali", "manila", "cebu", "kuala lumpur",
		"taipei", "phnom penh",
	},
	"latin-american": {
		"mexico", "brazil", "argentina", "chile", "peru", "colombia", "ecuador",
		"bolivia", "uruguay", "paraguay", "venezuela", "guatemala", "costa rica",
		"panama", "cuba", "dominican",
		"bogota", "medellin", "lima", "santiago", "caracas", "quito", "montevideo",
		"sao paulo", "rio de janeiro", "brasilia", "salvador", "guadalajara",
		"monterrey", "san jose", "la paz", "asuncion", "havana",
	},
	"north-american": {
		"united states", "usa", "canada",
		"toronto", "vancouver", "montreal", "ottawa", "calgary",
		"chicago", "los angeles", "san francisco", "seattle", "boston", "miami",
		"dallas", "houston", "atlanta", "washington", "philadelphia", "denver",
		"austin", "portland", "las vegas", "san diego", "phoenix", "detroit",
	},
}

// continentalFallbacks gives a plausible-but-generic descriptor per
// continental region, distinguished by the venue vocabulary a local guide
// would actually use there. regionForCity picks which one applies; an
// unrecognized city falls back to the neutral entry.
var continentalFallbacks = map[string]models.CityDNA{
	"european": {
		FoodTypicals:  []models.TypicalItem{{Name: "Local specialty"}},
		DrinkTypicals: []models.TypicalItem{{Name: "House wine"}},
		LocalKeywords: []string{"bistro", "market square", "old town"},
	},
	"asian": {
		FoodTypicals:  []models.TypicalItem{{Name: "Local specialty"}},
		DrinkTypicals: []models.TypicalItem{{Name: "House tea"}},
		LocalKeywords: []string{"night market", "street food stall", "old quarter"},
	},
	"latin-american": {
		FoodTypicals:  []models.TypicalItem{{Name: "Local specialty"}},
		DrinkTypicals: []models.TypicalItem{{Name: "House cocktail"}},
		LocalKeywords: []string{"mercado", "plaza", "cantina"},
	},
	"north-american": {
		FoodTypicals:  []models.TypicalItem{{Name: "Local specialty"}},
		DrinkTypicals: []models.TypicalItem{{Name: "House drink"}},
		LocalKeywords: []string{"diner", "downtown", "farmers market"},
	},
	"": {
		FoodTypicals:  []models.TypicalItem{{Name: "Local specialty"}},
		DrinkTypicals: []models.TypicalItem{{Name: "House drink"}},
		LocalKeywords: []string{"local", "traditional"},
	},
}

// regionForCity guesses a continental region from a substring match against
// a small per-region keyword set. Returns "" when nothing matches.
func regionForCity(city string) string {
	name := strings.ToLower(strings.TrimSpace(city))
	for _, region := range []string{"european", "asian", "latin-american", "north-american"} {
		for _, kw := range continentalKeywords[region] {
			if strings.Contains(name, kw) {
				return region
			}
		}
	}
	return ""
}

// BundledCityDNA returns the bundled fallback for a known city, the
// continental-region descriptor for a recognized-but-uncovered city, or the
// neutral generic descriptor otherwise. Used whenever no LLM client is
// configured, or as a degraded result after an LLM failure.
func BundledCityDNA(city, language string) models.CityDNA {
	key := strings.ToLower(strings.TrimSpace(city))
	dna, ok := bundledCityDNA[key]
	if !ok || len(dna.FoodTypicals) == 0 {
		dna = continentalFallbacks[regionForCity(city)]
	}
	dna.City = city
	dna.Language = language
	return dna
}
