package web

const pageTemplate = "index"

const pageHTML = `<!doctype html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>Brand-Cody API Playground</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; }
section { border: 1px solid #ccc; border-radius: 6px; padding: .75rem 1rem; margin-bottom: 1rem; }
code { color: #666; }
.error { background: #fdecea; color: #b71c1c; padding: .5rem 1rem; border-radius: 6px; }
.status { color: #666; }
pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow: auto; }
</style>
</head>
<body>
<h1>Brand-Cody API Playground</h1>
<p class="status">{{if .BaseURL}}{{.BaseURL}}{{else}}(no base address configured){{end}}</p>
{{range .Sections}}
<section id="{{.Slug}}">
<h2>{{.Number}}. {{.Title}}</h2>
<p><code>GET {{.Path}}</code></p>
<form method="post" action="/run/{{.Slug}}">
{{- if .Selector}}
<select name="category">
{{- range $.Categories}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
<button type="submit" formaction="/select">Select</button>
{{- end}}
<button type="submit">Run</button>
</form>
</section>
{{end}}
{{if .InFlight}}<p class="status">{{.InFlight}} in flight</p>{{end}}
{{if .Error}}<p class="error">Request failed: {{.Error}} (the previous response is still displayed)</p>{{end}}
{{if .Output}}
<h2>Response{{if .Status}} <small class="status">{{.Status}}</small>{{end}}</h2>
<pre id="output">{{.Output}}</pre>
{{end}}
</body>
</html>
`
