package market

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/hh-screener/internal/skills"
)

const (
	// titleWeight multiplies title mentions relative to skill-list mentions.
	titleWeight = 3.0
	// titleBoost is added to skills named in the role title.
	titleBoost = 0.3
	// seniorFactor raises the bar for senior roles.
	seniorFactor = 1.1
	// clusterShare is the minimal share of listings two skills must share.
	clusterShare = 0.5
)

// Role focus areas.
const (
	FocusGeneral   = "general"
	FocusBackend   = "backend"
	FocusFrontend  = "frontend"
	FocusFullstack = "fullstack"
	FocusDevOps    = "devops"
	FocusML        = "ml"
	FocusQA        = "qa"
)

var focusTerms = []struct {
	focus string
	terms []string
}{
	{FocusBackend, []string{"backend", "бэкенд", "back-end"}},
	{FocusFrontend, []string{"frontend", "фронтенд", "front-end"}},
	{FocusFullstack, []string{"fullstack", "full-stack", "full stack", "фулстек"}},
	{FocusDevOps, []string{"devops", "sre", "infrastructure", "инфраструктура"}},
	{FocusML, []string{"ml", "machine learning", "data science", "data scientist", "ai"}},
	{FocusQA, []string{"qa", "test", "tester", "testing", "тестировщик"}},
}

// RoleContext is what the role title tells about the position.
type RoleContext struct {
	Seniority   string   `json:"seniority" yaml:"seniority"`
	Focus       string   `json:"primary_focus" yaml:"primary_focus"`
	TitleSkills []string `json:"tech_stack_signals" yaml:"tech_stack_signals"`
}

// Importance scores every skill by how often the market asks for it.
// Keys are canonical skill names. Without listings every skill scores 0.
func Importance(snapshot *Snapshot, names []string) map[string]float64 {
	names = skills.NormalizeBatch(names)
	scores := make(map[string]float64, len(names))
	for _, name := range names {
		scores[name] = 0
	}

	total := snapshot.Len()
	if total == 0 {
		return scores
	}

	mentions := make(map[string]int)
	inTitle := make(map[string]int)
	for _, item := range snapshot.Items {
		for _, s := range skills.NormalizeBatch(item.Skills) {
			mentions[s]++
		}

		title := strings.ToLower(item.Title)
		for _, name := range names {
			if skills.Default.MentionsSkill(title, name) {
				inTitle[name]++
			}
		}
	}

	for _, name := range names {
		frequency := float64(mentions[name]) / float64(total)
		titleRate := float64(inTitle[name]) / float64(total)
		scores[name] = round3(math.Min(1, frequency+titleWeight*titleRate))
	}

	return scores
}

// AnalyzeRole extracts seniority, focus and the skills named in the role title.
func AnalyzeRole(role string, names []string) RoleContext {
	title := strings.ToLower(role)
	ctx := RoleContext{
		Seniority: skills.Seniority(title),
		Focus:     FocusGeneral,
	}

	for _, f := range focusTerms {
		if skills.ContainsAny(title, f.terms...) {
			ctx.Focus = f.focus
			break
		}
	}

	for _, name := range skills.NormalizeBatch(names) {
		if skills.Default.MentionsSkill(title, name) {
			ctx.TitleSkills = append(ctx.TitleSkills, name)
		}
	}

	return ctx
}

// AdjustByContext returns a copy of the scores boosted for skills named in the
// role title and scaled up for senior roles. Scores stay within [0,1].
func AdjustByContext(scores map[string]float64, ctx RoleContext) map[string]float64 {
	adjusted := make(map[string]float64, len(scores))
	for name, v := range scores {
		adjusted[name] = v
	}

	for _, name := range ctx.TitleSkills {
		if v, ok := adjusted[name]; ok {
			adjusted[name] = math.Min(1, v+titleBoost)
		}
	}

	if ctx.Seniority == skills.SenioritySenior {
		for name, v := range adjusted {
			adjusted[name] = math.Min(1, v*seniorFactor)
		}
	}

	for name, v := range adjusted {
		adjusted[name] = round3(v)
	}

	return adjusted
}

// CoOccurrence returns, for every skill, the other skills it shares more than
// half of the listings with. Lists are sorted.
func CoOccurrence(snapshot *Snapshot, names []string) map[string][]string {
	clusters := make(map[string][]string)
	total := snapshot.Len()
	if total == 0 {
		return clusters
	}

	names = skills.NormalizeBatch(names)
	pairs := make(map[[2]string]int)
	for _, item := range snapshot.Items {
		present := make(map[string]bool)
		for _, s := range skills.NormalizeBatch(item.Skills) {
			present[s] = true
		}
		for i, a := range names {
			if !present[a] {
				continue
			}
			for _, b := range names[i+1:] {
				if present[b] {
					pairs[[2]string{a, b}]++
				}
			}
		}
	}

	for pair, count := range pairs {
		if float64(count)/float64(total) > clusterShare {
			clusters[pair[0]] = append(clusters[pair[0]], pair[1])
			clusters[pair[1]] = append(clusters[pair[1]], pair[0])
		}
	}

	for name := range clusters {
		sort.Strings(clusters[name])
	}

	return clusters
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
