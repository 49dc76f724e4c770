package site

import "html/template"

type memberView struct {
	Name      string
	Kind      string
	Signature string
	Comment   template.HTML
}

type sectionView struct {
	Prose   template.HTML
	Members []memberView
}

type navLink struct {
	Name    string
	Href    string
	Current bool
}

type pageView struct {
	Site     string
	Title    string
	Style    template.CSS
	Nav      []navLink
	Sections []sectionView
}

type indexView struct {
	Site    string
	Style   template.CSS
	Modules []navLink
}

const baseCSS = `body { font-family: system-ui, sans-serif; margin: 0; display: flex; }
nav { min-width: 220px; padding: 20px; border-right: 1px solid #eee; }
nav a { display: block; color: #1293d8; text-decoration: none; }
nav a.current { font-weight: bold; }
main { max-width: 800px; padding: 20px 40px; }
.member { border-top: 1px solid #eee; padding-top: 10px; margin-top: 20px; }
.signature { background: #f8f9fa; padding: 10px; border-radius: 5px; overflow-x: auto; }
`

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Site}}</title>
    <style>{{.Style}}</style>
</head>
<body>
    <nav>
        <h2>{{.Site}}</h2>
{{- range .Nav}}
        <a href="{{.Href}}"{{if .Current}} class="current"{{end}}>{{.Name}}</a>
{{- end}}
    </nav>
    <main>
        <h1>{{.Title}}</h1>
{{- range .Sections}}
{{- if .Prose}}
        <div class="prose">{{.Prose}}</div>
{{- end}}
{{- range .Members}}
        <div class="member {{.Kind}}" id="{{.Name}}">
            <pre class="signature"><code>{{.Signature}}</code></pre>
{{- if .Comment}}
            <div class="comment">{{.Comment}}</div>
{{- end}}
        </div>
{{- end}}
{{- end}}
    </main>
</body>
</html>
`))

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Site}}</title>
    <style>{{.Style}}</style>
</head>
<body>
    <main>
        <h1>{{.Site}}</h1>
        <ul class="modules">
{{- range .Modules}}
            <li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
        </ul>
    </main>
</body>
</html>
`))
