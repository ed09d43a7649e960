// Package cfr classifies federal agencies against the 50 CFR titles.
package cfr

import "strings"

// titleNames maps each CFR title number to its official name, per
// www.ecfr.gov.
var titleNames = map[int]string{
	1:  "General Provisions",
	2:  "Grants and Agreements",
	3:  "The President",
	4:  "Accounts",
	5:  "Administrative Personnel",
	6:  "Domestic Security",
	7:  "Agriculture",
	8:  "Aliens and Nationality",
	9:  "Animals and Animal Products",
	10: "Energy",
	11: "Federal Elections",
	12: "Banks and Banking",
	13: "Business Credit and Assistance",
	14: "Aeronautics and Space",
	15: "Commerce and Foreign Trade",
	16: "Commercial Practices",
	17: "Commodity and Securities Exchanges",
	18: "Conservation of Power and Water Resources",
	19: "Customs Duties",
	20: "Employees' Benefits",
	21: "Food and Drugs",
	22: "Foreign Relations",
	23: "Highways",
	24: "Housing and Urban Development",
	25: "Indians",
	26: "Internal Revenue",
	27: "Alcohol, Tobacco Products and Firearms",
	28: "Judicial Administration",
	29: "Labor",
	30: "Mineral Resources",
	31: "Money and Finance: Treasury",
	32: "National Defense",
	33: "Navigation and Navigable Waters",
	34: "Education",
	35: "Panama Canal",
	36: "Parks, Forests, and Public Property",
	37: "Patents, Trademarks, and Copyrights",
	38: "Pensions, Bonuses, and Veterans' Relief",
	39: "Postal Service",
	40: "Protection of Environment",
	41: "Public Contracts and Property Management",
	42: "Public Health",
	43: "Public Lands: Interior",
	44: "Emergency Management and Assistance",
	45: "Public Welfare",
	46: "Shipping",
	47: "Telecommunication",
	48: "Federal Acquisition Regulations System",
	49: "Transportation",
	50: "Wildlife and Fisheries",
}

// keywordRule ties an agency-name keyword to its primary CFR title.
type keywordRule struct {
	keyword string
	title   int
}

// keywordRules is ordered: an agency matching several rules is classified by
// the earliest one. The order mirrors the Federal Register keyword table.
var keywordRules = []keywordRule{
	{"Agriculture", 7},
	{"Air Force", 32},
	{"Army", 32},
	{"Coast Guard", 33},
	{"Commerce", 15},
	{"Defense", 32},
	{"Education", 34},
	{"Energy", 10},
	{"Environmental Protection", 40},
	{"Federal Aviation", 14},
	{"Federal Communications", 47},
	{"Federal Election", 11},
	{"Federal Trade", 16},
	{"Food and Drug", 21},
	{"Health and Human Services", 42},
	{"Homeland Security", 6},
	{"Housing and Urban Development", 24},
	{"Interior", 43},
	{"Internal Revenue", 26},
	{"Justice", 28},
	{"Labor", 29},
	{"National Aeronautics", 14},
	{"Navy", 32},
	{"Nuclear Regulatory", 10},
	{"Postal Service", 39},
	{"Securities and Exchange", 17},
	{"Small Business", 13},
	{"Social Security", 20},
	{"State Department", 22},
	{"Transportation", 49},
	{"Treasury", 31},
	{"Veterans Affairs", 38},
}

// orderedTitles lists title numbers 1..50 so fallback matching against title
// names is deterministic.
var orderedTitles = func() []int {
	titles := make([]int, 0, len(titleNames))
	for n := 1; n <= 50; n++ {
		if _, ok := titleNames[n]; ok {
			titles = append(titles, n)
		}
	}
	return titles
}()

// Match classifies an agency name against the CFR title taxonomy.
//
// Keyword rules are checked first, in table order, so an agency matching
// several titles is associated with its earliest (primary) match. When no
// keyword applies, title names themselves are tried in either direction of
// containment. Matching is case-insensitive.
func Match(agencyName string) (int, bool) {
	name := strings.ToUpper(strings.TrimSpace(agencyName))
	if name == "" {
		return 0, false
	}

	for _, rule := range keywordRules {
		if strings.Contains(name, strings.ToUpper(rule.keyword)) {
			return rule.title, true
		}
	}

	for _, title := range orderedTitles {
		titleName := strings.ToUpper(titleNames[title])
		if strings.Contains(name, titleName) || strings.Contains(titleName, name) {
			return title, true
		}
	}

	return 0, false
}

// TitleName returns the official name for a CFR title number, or "" when the
// number is outside the taxonomy.
func TitleName(title int) string {
	return titleNames[title]
}
