package theme

const (
	defaultTrack = "#1c1c1c"
	defaultError = "#ef5350"
)

var builtinThemes = []Theme{
	{Name: "amber", Background: "#0b0f0d", Border: "#ffb300", Title: "#ffca28", Accent: "#ffe082", Text: "#eaeaea", Muted: "#9e9e9e"},
	{Name: "crimson", Background: "#0b0a0a", Border: "#c62828", Title: "#e53935", Accent: "#ef9a9a", Text: "#f5f5f5", Muted: "#9e9e9e"},
	{Name: "cyan", Background: "#050f12", Border: "#00acc1", Title: "#26c6da", Accent: "#80deea", Text: "#e0f7fa", Muted: "#90a4ae"},
	{Name: "emerald", Background: "#050d0a", Border: "#2e7d32", Title: "#43a047", Accent: "#a5d6a7", Text: "#e8f5e9", Muted: "#9e9e9e"},
	{Name: "orange", Background: "#0f0a05", Border: "#ef6c00", Title: "#fb8c00", Accent: "#ffcc80", Text: "#fff3e0", Muted: "#bdbdbd"},
	{Name: "purple", Background: "#0a0610", Border: "#7e57c2", Title: "#9575cd", Accent: "#d1c4e9", Text: "#ede7f6", Muted: "#b0bec5"},
	{Name: "red", Background: "#0f0505", Border: "#d32f2f", Title: "#f44336", Accent: "#ffcdd2", Text: "#ffebee", Muted: "#bdbdbd"},
	{Name: "slate", Background: "#0b0d10", Border: "#455a64", Title: "#607d8b", Accent: "#b0bec5", Text: "#eceff1", Muted: "#90a4ae"},
}

// languageColors follows GitHub's linguist colors for common languages.
var languageColors = map[string]string{
	"C":                "#555555",
	"C#":               "#178600",
	"C++":              "#f34b7d",
	"CSS":              "#563d7c",
	"Clojure":          "#db5855",
	"CoffeeScript":     "#244776",
	"Dart":             "#00b4ab",
	"Dockerfile":       "#384d54",
	"Elixir":           "#6e4a7e",
	"Elm":              "#60b5cc",
	"Erlang":           "#b83998",
	"Go":               "#00add8",
	"Groovy":           "#4298b8",
	"HCL":              "#844fba",
	"HTML":             "#e34c26",
	"Haskell":          "#5e5086",
	"Java":             "#b07219",
	"JavaScript":       "#f1e05a",
	"Jupyter Notebook": "#da5b0b",
	"Kotlin":           "#a97bff",
	"Lua":              "#000080",
	"Makefile":         "#427819",
	"Nix":              "#7e7eff",
	"OCaml":            "#ef7a08",
	"Objective-C":      "#438eff",
	"PHP":              "#4f5d95",
	"Perl":             "#0298c3",
	"PowerShell":       "#012456",
	"Python":           "#3572a5",
	"R":                "#198ce7",
	"Ruby":             "#701516",
	"Rust":             "#dea584",
	"SCSS":             "#c6538c",
	"Scala":            "#c22d40",
	"Shell":            "#89e051",
	"Swift":            "#f05138",
	"TypeScript":       "#3178c6",
	"Vue":              "#41b883",
	"Zig":              "#ec915c",
}
