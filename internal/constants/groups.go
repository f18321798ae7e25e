package constants

var GroupCategories = []string{
	"sports",
	"development",
	"fun",
	"interaction",
	"social",
	"learning",
	"exam-prep",
}

func IsGroupCategory(category string) bool {
	for _, c := range GroupCategories {
		if c == category {
			return true
		}
	}
	return false
}
