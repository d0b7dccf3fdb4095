package classify

import (
	"strings"

	"runway/internal/core"
)

// keywordRule maps a description substring to an expense category. Rules
// are evaluated in order; the first match wins, so more specific substrings
// come before generic ones.
type keywordRule struct {
	substr   string
	category core.Category
}

var expenseKeywords = []keywordRule{
	{"rent", core.CategoryHousing},
	{"mortgage", core.CategoryHousing},
	{"hoa", core.CategoryHousing},

	{"grocer", core.CategoryFood},
	{"supermarket", core.CategoryFood},
	{"restaurant", core.CategoryFood},
	{"cafe", core.CategoryFood},
	{"coffee", core.CategoryFood},
	{"takeout", core.CategoryFood},

	{"uber", core.CategoryTransport},
	{"taxi", core.CategoryTransport},
	{"fuel", core.CategoryTransport},
	{"gas station", core.CategoryTransport},
	{"parking", core.CategoryTransport},
	{"train", core.CategoryTransport},
	{"bus", core.CategoryTransport},

	{"electric", core.CategoryUtilities},
	{"water bill", core.CategoryUtilities},
	{"internet", core.CategoryUtilities},
	{"phone", core.CategoryUtilities},
	{"heating", core.CategoryUtilities},

	{"pharmacy", core.CategoryHealth},
	{"doctor", core.CategoryHealth},
	{"dentist", core.CategoryHealth},
	{"gym", core.CategoryHealth},

	{"netflix", core.CategorySubscriptions},
	{"spotify", core.CategorySubscriptions},
	{"subscription", core.CategorySubscriptions},

	{"cinema", core.CategoryEntertainment},
	{"concert", core.CategoryEntertainment},
	{"game", core.CategoryEntertainment},

	{"flight", core.CategoryTravel},
	{"hotel", core.CategoryTravel},
	{"airbnb", core.CategoryTravel},

	{"amazon", core.CategoryShopping},
	{"clothes", core.CategoryShopping},
	{"shoes", core.CategoryShopping},
}

// keywordCategory resolves an expense description by substring match,
// case-insensitive, defaulting to "other".
func keywordCategory(description string) core.Category {
	desc := strings.ToLower(description)
	for _, rule := range expenseKeywords {
		if strings.Contains(desc, rule.substr) {
			return rule.category
		}
	}
	return core.CategoryOther
}
