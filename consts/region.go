package consts

import (
	"fmt"
	"sort"
	"strings"
)

// Regions - country keys shown for each region. United Kingdom appears by its provinces.
var Regions map[string][]string

func init() {
	Regions = make(map[string][]string)

	Regions["europe"] = []string{
		"Albania", "Andorra", "Austria", "Belarus", "Belgium", "Bosnia and Herzegovina",
		"Bulgaria", "Channel Islands", "Croatia", "Cyprus", "Czechia", "Denmark", "England",
		"Estonia", "Finland", "France", "Germany", "Gibraltar", "Greece", "Holy See", "Hungary",
		"Iceland", "Ireland", "Isle of Man", "Italy", "Kosovo", "Latvia", "Liechtenstein",
		"Lithuania", "Luxembourg", "Malta", "Moldova", "Monaco", "Montenegro", "Netherlands",
		"North Macedonia", "Northern Ireland", "Norway", "Poland", "Portugal", "Romania",
		"San Marino", "Scotland", "Serbia", "Slovakia", "Slovenia", "Spain", "Sweden",
		"Switzerland", "Ukraine", "United Kingdom (unspecified)", "Wales",
	}

	Regions["asia"] = []string{
		"Afghanistan", "Bangladesh", "Bhutan", "Brunei", "Cambodia", "China", "India",
		"Indonesia", "Iran", "Iraq", "Israel", "Japan", "Jordan", "Kazakhstan",
		"Korea, South", "Kuwait", "Kyrgyzstan", "Laos", "Lebanon", "Malaysia", "Maldives",
		"Mongolia", "Nepal", "Oman", "Pakistan", "Philippines", "Qatar", "Saudi Arabia",
		"Singapore", "Sri Lanka", "Taiwan*", "Thailand", "Timor-Leste", "United Arab Emirates",
		"Uzbekistan", "Vietnam",
	}

	Regions["americas"] = []string{
		"Anguilla", "Antigua and Barbuda", "Argentina", "Bahamas", "Barbados", "Belize",
		"Bermuda", "Bolivia", "Brazil", "British Virgin Islands", "Canada", "Cayman Islands",
		"Chile", "Colombia", "Costa Rica", "Cuba", "Dominica", "Dominican Republic", "Ecuador",
		"El Salvador", "Falkland Islands (Malvinas)", "Grenada", "Guatemala", "Guyana", "Haiti",
		"Honduras", "Jamaica", "Mexico", "Montserrat", "Nicaragua", "Panama", "Paraguay", "Peru",
		"Saint Kitts and Nevis", "Saint Lucia", "Saint Vincent and the Grenadines", "Suriname",
		"Trinidad and Tobago", "Turks and Caicos Islands", "US", "Uruguay", "Venezuela",
	}
}

// RegionCountries returns the allow-list of a region, an empty region means no filter
func RegionCountries(region string) ([]string, error) {
	if region == "" {
		return nil, nil
	}

	countries, ok := Regions[strings.ToLower(region)]
	if !ok {
		return nil, fmt.Errorf("%s not exist", region)
	}
	return countries, nil
}

// RegionNames returns the known regions in alphabetical order
func RegionNames() []string {
	names := make([]string, 0, len(Regions))
	for name := range Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
