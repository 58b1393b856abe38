package skills

import "strings"

// Category groups skills for gap analysis.
type Category string

const (
	CategoryBackend  Category = "backend"
	CategoryFrontend Category = "frontend"
	CategoryML       Category = "ml"
	CategoryDatabase Category = "database"
	CategoryDevOps   Category = "devops"
	CategoryOther    Category = "other"
)

var categories = map[Category][]string{
	CategoryBackend:  {"python", "java", "go", "rust", "c++", "c#", "ruby", "php", "kotlin", "django", "flask", "fastapi", "spring", "node", "express"},
	CategoryFrontend: {"javascript", "typescript", "react", "vue", "angular"},
	CategoryML:       {"pytorch", "tensorflow", "scikit-learn", "pandas", "numpy"},
	CategoryDatabase: {"postgresql", "mysql", "mongodb", "redis", "elasticsearch"},
	CategoryDevOps:   {"docker", "kubernetes", "aws", "gcp", "azure", "terraform", "ansible", "jenkins", "gitlab", "github"},
}

var categoryOf = func() map[string]Category {
	m := make(map[string]Category)
	for c, names := range categories {
		for _, n := range names {
			m[n] = c
		}
	}
	return m
}()

// CategoryOf returns the category of a canonical skill name.
func CategoryOf(skill string) Category {
	if c, ok := categoryOf[strings.ToLower(skill)]; ok {
		return c
	}
	return CategoryOther
}

// IsCritical reports whether a missing skill of this category blocks core work.
func (c Category) IsCritical() bool {
	return c == CategoryBackend || c == CategoryFrontend || c == CategoryDatabase
}

// GroupByCategory buckets skills by category, keeping input order.
func GroupByCategory(skills []string) map[Category][]string {
	grouped := make(map[Category][]string)
	for _, s := range skills {
		c := CategoryOf(s)
		grouped[c] = append(grouped[c], s)
	}
	return grouped
}
