package render

import (
	"html/template"
	"strings"

	"github.com/yaklabco/mdstrip/pkg/config"
)

const layoutSource = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Page.Title }} | {{ .Site.Title }}</title>
{{- with .Page.Description }}
<meta name="description" content="{{ . }}">
{{- end }}
</head>
<body>
<header class="site-header">
<a class="site-title" href="{{ .Root }}">{{ .Site.Title }}</a>
<nav class="social">
{{- range .Site.Social }}
<a class="social-{{ .Icon }}" href="{{ .Href }}" rel="me">{{ .Label }}</a>
{{- end }}
</nav>
</header>
<nav class="sidebar">
{{- range .Sidebar }}
<details open>
<summary>{{ .Label }}</summary>
<ul>
{{- range .Entries }}
<li><a href="{{ $.Root }}{{ .Slug }}"{{ if .Current }} aria-current="page"{{ end }}>{{ .Label }}</a></li>
{{- end }}
</ul>
</details>
{{- end }}
</nav>
<main>
<h1>{{ .Page.Title }}</h1>
{{ .Page.Body }}
</main>
</body>
</html>
`

//nolint:gochecknoglobals // Parsed once; templates are safe for concurrent use.
var layout = template.Must(template.New("page").Parse(layoutSource))

// layoutData is the template input for one page.
type layoutData struct {
	Site    config.SiteConfig
	Page    *Page
	Sidebar []sidebarView

	// Root is the relative prefix from the page to the site root.
	Root string
}

type sidebarView struct {
	Label   string
	Entries []sidebarEntry
}

type sidebarEntry struct {
	Label   string
	Slug    string
	Current bool
}

// rootPrefix returns the relative path from a page slug back to the
// output root, e.g. "../" for "gleam/intro".
func rootPrefix(slug string) string {
	depth := strings.Count(slug, "/")
	if depth == 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}
