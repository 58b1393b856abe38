package skills

import (
	"fmt"
	"sort"
	"strings"
)

// Skill is a canonical skill identifier together with its known aliases.
type Skill struct {
	Name     string
	Synonyms []string
}

// Taxonomy maps every known alias to exactly one canonical skill.
// It is read-only after construction.
type Taxonomy struct {
	skills    []Skill
	canonical map[string]string
	// aliases lists the aliases of every canonical skill, longest first.
	aliases map[string][]string
}

var defaultSkills = []Skill{
	{"python", []string{"python", "py", "python3", "питон", "пайтон"}},
	{"javascript", []string{"javascript", "js", "es6", "es2015", "ecmascript", "джаваскрипт"}},
	{"typescript", []string{"typescript", "ts", "тайпскрипт"}},
	{"java", []string{"java", "джава"}},
	{"go", []string{"go", "golang", "го"}},
	{"rust", []string{"rust", "раст"}},
	{"c++", []string{"c++", "cpp", "cplusplus", "си++"}},
	{"c#", []string{"c#", "csharp", "си шарп"}},
	{"ruby", []string{"ruby", "руби"}},
	{"php", []string{"php", "пхп"}},
	{"kotlin", []string{"kotlin", "котлин"}},
	{"swift", []string{"swift", "свифт"}},
	{"react", []string{"react", "reactjs", "react.js", "реакт"}},
	{"vue", []string{"vue", "vuejs", "vue.js", "вью"}},
	{"angular", []string{"angular", "angularjs", "ангуляр"}},
	{"django", []string{"django", "джанго"}},
	{"flask", []string{"flask", "фласк"}},
	{"fastapi", []string{"fastapi", "fast-api", "фастапи"}},
	{"spring", []string{"spring", "spring boot", "springboot"}},
	{"node", []string{"node", "nodejs", "node.js", "нода"}},
	{"express", []string{"express", "expressjs", "express.js"}},
	{"postgresql", []string{"postgresql", "postgres", "pg", "постгрес", "постгресql"}},
	{"mysql", []string{"mysql", "май sql"}},
	{"mongodb", []string{"mongodb", "mongo", "монго"}},
	{"redis", []string{"redis", "редис"}},
	{"elasticsearch", []string{"elasticsearch", "elastic", "эластик"}},
	{"docker", []string{"docker", "докер"}},
	{"kubernetes", []string{"kubernetes", "k8s", "кубер", "кубернетес"}},
	{"aws", []string{"aws", "amazon web services", "амазон"}},
	{"gcp", []string{"gcp", "google cloud", "гугл клауд"}},
	{"azure", []string{"azure", "азур", "азуре"}},
	{"terraform", []string{"terraform", "терраформ"}},
	{"ansible", []string{"ansible", "ансибл"}},
	{"jenkins", []string{"jenkins", "дженкинс"}},
	{"gitlab", []string{"gitlab", "gitlab ci", "гитлаб"}},
	{"github", []string{"github", "github actions", "гитхаб"}},
	{"pytorch", []string{"pytorch", "torch", "пайторч"}},
	{"tensorflow", []string{"tensorflow", "tf", "тензорфлоу"}},
	{"scikit-learn", []string{"scikit-learn", "sklearn", "сайкит"}},
	{"pandas", []string{"pandas", "пандас"}},
	{"numpy", []string{"numpy", "нампи"}},
	{"pytest", []string{"pytest", "py.test"}},
	{"jest", []string{"jest", "джест"}},
	{"selenium", []string{"selenium", "селениум"}},
	{"git", []string{"git", "гит"}},
	{"linux", []string{"linux", "линукс", "unix"}},
	{"rest", []string{"rest", "restful", "rest api", "рест"}},
	{"graphql", []string{"graphql", "graph ql", "графкуэл"}},
	{"microservices", []string{"microservices", "микросервисы"}},
	{"agile", []string{"agile", "scrum", "аджайл"}},
}

// Default is the built-in taxonomy shared by the whole process.
var Default = MustTaxonomy(defaultSkills)

// NewTaxonomy builds a lookup table. An alias claimed by two different
// canonical skills is an error.
func NewTaxonomy(skills []Skill) (*Taxonomy, error) {
	t := &Taxonomy{
		skills:    make([]Skill, 0, len(skills)),
		canonical: make(map[string]string),
		aliases:   make(map[string][]string),
	}

	for _, s := range skills {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			return nil, fmt.Errorf("skill without a name")
		}

		aliases := append([]string{name}, s.Synonyms...)
		for _, alias := range aliases {
			alias = strings.ToLower(strings.TrimSpace(alias))
			if owner, ok := t.canonical[alias]; ok && owner != name {
				return nil, fmt.Errorf("alias %q is claimed by %q and %q", alias, owner, name)
			}
			if _, ok := t.canonical[alias]; !ok {
				t.aliases[name] = append(t.aliases[name], alias)
			}
			t.canonical[alias] = name
		}
		sortLongestFirst(t.aliases[name])

		t.skills = append(t.skills, Skill{Name: name, Synonyms: s.Synonyms})
	}

	return t, nil
}

// MustTaxonomy is like NewTaxonomy but panics on a malformed table.
func MustTaxonomy(skills []Skill) *Taxonomy {
	t, err := NewTaxonomy(skills)
	if err != nil {
		panic(err)
	}
	return t
}

// Canonical returns the canonical name for an already cleaned alias.
func (t *Taxonomy) Canonical(alias string) (string, bool) {
	name, ok := t.canonical[alias]
	return name, ok
}

// Skills returns the taxonomy entries in table order.
func (t *Taxonomy) Skills() []Skill {
	return t.skills
}

// Aliases returns every alias of the canonical skill, longest first.
func (t *Taxonomy) Aliases(name string) []string {
	return t.aliases[name]
}

func sortLongestFirst(aliases []string) {
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
}
