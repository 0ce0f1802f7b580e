package server

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 24px; color: #222; }
    main { display: flex; gap: 32px; align-items: flex-start; flex-wrap: wrap; }
    svg { border: 1px solid #ddd; background: #fff; }
    table { border-collapse: collapse; font-size: 13px; }
    th, td { padding: 4px 10px; text-align: right; border-bottom: 1px solid #eee; }
    th:first-child, td:first-child { text-align: left; }
    .hint { color: #777; font-size: 13px; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p class="hint">Click a figure to switch attribute pairs (starting at {{.StepName}}). Press <kbd>{{.Key}}</kbd> to rotate values.</p>
  <main>
    {{.SVG}}
    {{.Table}}
  </main>
</body>
</html>
`))
