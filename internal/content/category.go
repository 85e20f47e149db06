package content

// CategoryAll (or an empty category) selects every record of a collection.
const CategoryAll = "all"

// BlogCategory is the closed set of blog post tags.
type BlogCategory string

const (
	BlogCategoryDevOps     BlogCategory = "devops"
	BlogCategoryWeb3       BlogCategory = "web3"
	BlogCategoryBlockchain BlogCategory = "blockchain"
)

func (c BlogCategory) Valid() bool {
	switch c {
	case BlogCategoryDevOps, BlogCategoryWeb3, BlogCategoryBlockchain:
		return true
	default:
		return false
	}
}

// CaseStudyCategory is the closed set of case study tags.
// The casing differs from BlogCategory and the two are not interchangeable.
type CaseStudyCategory string

const (
	CaseStudyCategoryDevOps CaseStudyCategory = "DevOps"
	CaseStudyCategoryWeb3   CaseStudyCategory = "Web3"
)

func (c CaseStudyCategory) Valid() bool {
	switch c {
	case CaseStudyCategoryDevOps, CaseStudyCategoryWeb3:
		return true
	default:
		return false
	}
}

func isAll(category string) bool {
	return category == "" || category == CategoryAll
}

// resultIcons is the icon vocabulary the case study page knows how to draw.
var resultIcons = map[string]bool{
	"rocket":       true,
	"dollar":       true,
	"check-circle": true,
	"clock":        true,
	"zap":          true,
	"users":        true,
	"activity":     true,
	"shield":       true,
	"bell":         true,
	"bell-off":     true,
	"git-branch":   true,
	"check":        true,
	"code":         true,
	"trending-up":  true,
}
