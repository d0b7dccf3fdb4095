package core

// Category is a tag drawn from one of two closed vocabularies, one per
// transaction direction. Anything outside the vocabulary matching the
// direction resolves to CategoryOther.
type Category string

const CategoryOther Category = "other"

// Expense vocabulary.
const (
	CategoryHousing       Category = "housing"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryHealth        Category = "health"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategorySubscriptions Category = "subscriptions"
	CategoryTravel        Category = "travel"
)

// Income vocabulary.
const (
	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryBusiness    Category = "business"
	CategoryInvestments Category = "investments"
	CategoryGifts       Category = "gifts"
)

var expenseCategories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryHealth,
	CategoryEntertainment,
	CategoryShopping,
	CategorySubscriptions,
	CategoryTravel,
	CategoryOther,
}

var incomeCategories = []Category{
	CategorySalary,
	CategoryFreelance,
	CategoryBusiness,
	CategoryInvestments,
	CategoryGifts,
	CategoryOther,
}

// ExpenseCategories returns the closed expense vocabulary.
func ExpenseCategories() []Category {
	return append([]Category(nil), expenseCategories...)
}

// IncomeCategories returns the closed income vocabulary.
func IncomeCategories() []Category {
	return append([]Category(nil), incomeCategories...)
}

// ValidCategory reports whether c belongs to the vocabulary for the given
// direction.
func ValidCategory(c Category, income bool) bool {
	vocab := expenseCategories
	if income {
		vocab = incomeCategories
	}
	for _, v := range vocab {
		if v == c {
			return true
		}
	}
	return false
}

// NormalizeCategory maps c into the vocabulary for the given direction,
// defaulting to CategoryOther when absent or outside the vocabulary.
func NormalizeCategory(c Category, income bool) Category {
	if ValidCategory(c, income) {
		return c
	}
	return CategoryOther
}
