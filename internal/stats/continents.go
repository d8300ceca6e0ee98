package stats

// ContinentOf maps a country name to its continent. Names outside the
// table, including the empty string, land in the "Unknown" bucket.
func ContinentOf(country string) string {
	if c, ok := continents[country]; ok {
		return c
	}
	return "Unknown"
}

var continents = map[string]string{
	"Algeria":                          "Africa",
	"Angola":                           "Africa",
	"Benin":                            "Africa",
	"Botswana":                         "Africa",
	"Burkina Faso":                     "Africa",
	"Burundi":                          "Africa",
	"Cameroon":                         "Africa",
	"Central African Republic":         "Africa",
	"Chad":                             "Africa",
	"Democratic Republic of the Congo": "Africa",
	"Djibouti":                         "Africa",
	"Egypt":                            "Africa",
	"Equatorial Guinea":                "Africa",
	"Eritrea":                          "Africa",
	"Eswatini":                         "Africa",
	"Ethiopia":                         "Africa",
	"Gabon":                            "Africa",
	"Gambia":                           "Africa",
	"Ghana":                            "Africa",
	"Guinea":                           "Africa",
	"Guinea-Bissau":                    "Africa",
	"Ivory Coast":                      "Africa",
	"Kenya":                            "Africa",
	"Lesotho":                          "Africa",
	"Liberia":                          "Africa",
	"Libya":                            "Africa",
	"Madagascar":                       "Africa",
	"Malawi":                           "Africa",
	"Mali":                             "Africa",
	"Mauritania":                       "Africa",
	"Morocco":                          "Africa",
	"Mozambique":                       "Africa",
	"Namibia":                          "Africa",
	"Niger":                            "Africa",
	"Nigeria":                          "Africa",
	"Republic of the Congo":            "Africa",
	"Rwanda":                           "Africa",
	"Senegal":                          "Africa",
	"Sierra Leone":                     "Africa",
	"Somalia":                          "Africa",
	"South Africa":                     "Africa",
	"South Sudan":                      "Africa",
	"Sudan":                            "Africa",
	"Tanzania":                         "Africa",
	"Togo":                             "Africa",
	"Tunisia":                          "Africa",
	"Uganda":                           "Africa",
	"Western Sahara":                   "Africa",
	"Zambia":                           "Africa",
	"Zimbabwe":                         "Africa",

	"Afghanistan":          "Asia",
	"Armenia":              "Asia",
	"Azerbaijan":           "Asia",
	"Bangladesh":           "Asia",
	"Bhutan":               "Asia",
	"Brunei":               "Asia",
	"Cambodia":             "Asia",
	"China":                "Asia",
	"Cyprus":               "Asia",
	"Georgia":              "Asia",
	"India":                "Asia",
	"Indonesia":            "Asia",
	"Iran":                 "Asia",
	"Iraq":                 "Asia",
	"Israel":               "Asia",
	"Japan":                "Asia",
	"Jordan":               "Asia",
	"Kazakhstan":           "Asia",
	"Kuwait":               "Asia",
	"Kyrgyzstan":           "Asia",
	"Laos":                 "Asia",
	"Lebanon":              "Asia",
	"Malaysia":             "Asia",
	"Mongolia":             "Asia",
	"Myanmar":              "Asia",
	"Nepal":                "Asia",
	"North Korea":          "Asia",
	"Oman":                 "Asia",
	"Pakistan":             "Asia",
	"Philippines":          "Asia",
	"Qatar":                "Asia",
	"Saudi Arabia":         "Asia",
	"Singapore":            "Asia",
	"South Korea":          "Asia",
	"Sri Lanka":            "Asia",
	"Syria":                "Asia",
	"Taiwan":               "Asia",
	"Tajikistan":           "Asia",
	"Thailand":             "Asia",
	"Timor-Leste":          "Asia",
	"Turkey":               "Asia",
	"Turkmenistan":         "Asia",
	"United Arab Emirates": "Asia",
	"Uzbekistan":           "Asia",
	"Vietnam":              "Asia",
	"Yemen":                "Asia",

	"Albania":                "Europe",
	"Austria":                "Europe",
	"Belarus":                "Europe",
	"Belgium":                "Europe",
	"Bosnia and Herzegovina": "Europe",
	"Bulgaria":               "Europe",
	"Croatia":                "Europe",
	"Czechia":                "Europe",
	"Denmark":                "Europe",
	"Estonia":                "Europe",
	"Finland":                "Europe",
	"France":                 "Europe",
	"Germany":                "Europe",
	"Greece":                 "Europe",
	"Hungary":                "Europe",
	"Iceland":                "Europe",
	"Ireland":                "Europe",
	"Italy":                  "Europe",
	"Latvia":                 "Europe",
	"Lithuania":              "Europe",
	"Luxembourg":             "Europe",
	"Moldova":                "Europe",
	"Montenegro":             "Europe",
	"Netherlands":            "Europe",
	"North Macedonia":        "Europe",
	"Norway":                 "Europe",
	"Poland":                 "Europe",
	"Portugal":               "Europe",
	"Romania":                "Europe",
	"Russia":                 "Europe",
	"Serbia":                 "Europe",
	"Slovakia":               "Europe",
	"Slovenia":               "Europe",
	"Spain":                  "Europe",
	"Sweden":                 "Europe",
	"Switzerland":            "Europe",
	"Ukraine":                "Europe",
	"United Kingdom":         "Europe",

	"Bahamas":             "North America",
	"Belize":              "North America",
	"Canada":              "North America",
	"Costa Rica":          "North America",
	"Cuba":                "North America",
	"Dominican Republic":  "North America",
	"El Salvador":         "North America",
	"Greenland":           "North America",
	"Guatemala":           "North America",
	"Haiti":               "North America",
	"Honduras":            "North America",
	"Jamaica":             "North America",
	"Mexico":              "North America",
	"Nicaragua":           "North America",
	"Panama":              "North America",
	"Puerto Rico":         "North America",
	"Trinidad and Tobago": "North America",
	"United States":       "North America",

	"Argentina":        "South America",
	"Bolivia":          "South America",
	"Brazil":           "South America",
	"Chile":            "South America",
	"Colombia":         "South America",
	"Ecuador":          "South America",
	"Falkland Islands": "South America",
	"Guyana":           "South America",
	"Paraguay":         "South America",
	"Peru":             "South America",
	"Suriname":         "South America",
	"Uruguay":          "South America",
	"Venezuela":        "South America",

	"Australia":        "Oceania",
	"Fiji":             "Oceania",
	"New Caledonia":    "Oceania",
	"New Zealand":      "Oceania",
	"Papua New Guinea": "Oceania",
	"Solomon Islands":  "Oceania",
	"Vanuatu":          "Oceania",

	"Antarctica":                  "Antarctica",
	"French Southern Territories": "Antarctica",
}
