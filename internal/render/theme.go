package render

import "strings"

// Category selects a visual theme.
type Category string

const (
	CategoryDSA          Category = "dsa"
	CategoryOOP          Category = "oops"
	CategoryDBMS         Category = "dbms"
	CategoryOS           Category = "os"
	CategoryNetworks     Category = "networks"
	CategoryWebDev       Category = "webdev"
	CategorySystemDesign Category = "system_design"
	CategoryProgramming  Category = "programming"
	CategoryGeneral      Category = "general"
)

// Motif names the decorative diagram drawn beside the code panel.
type Motif string

const (
	MotifTree         Motif = "tree"
	MotifStack        Motif = "stack"
	MotifLayered      Motif = "layered-architecture"
	MotifTable        Motif = "table"
	MotifProcessState Motif = "process-state-diagram"
	MotifNetwork      Motif = "network"
	MotifClassDiagram Motif = "class-diagram"
	MotifGeneric      Motif = "generic"
)

// Theme is the colour and decoration set for one category.
type Theme struct {
	Category     Category
	GradientFrom string
	GradientTo   string
	Accent       string
	AccentAlt    string
	Icon         string
	Motif        Motif
}

var themes = map[Category]Theme{
	CategoryDSA:          {CategoryDSA, "#0f2027", "#2c5364", "#00d2ff", "#3a7bd5", "🌳", MotifTree},
	CategoryWebDev:       {CategoryWebDev, "#141e30", "#243b55", "#61dafb", "#68a063", "🌐", MotifStack},
	CategorySystemDesign: {CategorySystemDesign, "#1f1c2c", "#928dab", "#f7b733", "#fc4a1a", "🏗️", MotifLayered},
	CategoryDBMS:         {CategoryDBMS, "#134e5e", "#71b280", "#ffd166", "#06d6a0", "🗄️", MotifTable},
	CategoryOS:           {CategoryOS, "#232526", "#414345", "#ff6b6b", "#feca57", "⚙️", MotifProcessState},
	CategoryNetworks:     {CategoryNetworks, "#000428", "#004e92", "#48dbfb", "#1dd1a1", "📡", MotifNetwork},
	CategoryOOP:          {CategoryOOP, "#42275a", "#734b6d", "#ff9ff3", "#54a0ff", "🧩", MotifClassDiagram},
	CategoryProgramming:  {CategoryProgramming, "#0b0c10", "#1f2833", "#66fcf1", "#45a29e", "💻", MotifGeneric},
	CategoryGeneral:      {CategoryGeneral, "#1e3c72", "#2a5298", "#a29bfe", "#74b9ff", "📘", MotifGeneric},
}

var categoryAliases = map[string]Category{
	"data_structures":      CategoryDSA,
	"algorithms":           CategoryDSA,
	"oop":                  CategoryOOP,
	"object_oriented":      CategoryOOP,
	"database":             CategoryDBMS,
	"databases":            CategoryDBMS,
	"sql":                  CategoryDBMS,
	"operating_systems":    CategoryOS,
	"operating_system":     CategoryOS,
	"networking":           CategoryNetworks,
	"computer_networks":    CategoryNetworks,
	"web":                  CategoryWebDev,
	"web_development":      CategoryWebDev,
	"mern":                 CategoryWebDev,
	"systemdesign":         CategorySystemDesign,
	"system":               CategorySystemDesign,
	"languages":            CategoryProgramming,
	"programming_language": CategoryProgramming,
}

// ThemeFor resolves a category (case, spaces and hyphens ignored) to its theme.
// Unknown categories get the general theme.
func ThemeFor(c Category) Theme {
	key := strings.ToLower(strings.TrimSpace(string(c)))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if th, ok := themes[Category(key)]; ok {
		return th
	}
	if alias, ok := categoryAliases[key]; ok {
		return themes[alias]
	}
	return themes[CategoryGeneral]
}

// Categories lists the named categories in a stable order, general last.
func Categories() []Category {
	return []Category{
		CategoryDSA,
		CategoryWebDev,
		CategorySystemDesign,
		CategoryDBMS,
		CategoryOS,
		CategoryNetworks,
		CategoryOOP,
		CategoryProgramming,
		CategoryGeneral,
	}
}
