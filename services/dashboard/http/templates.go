package http

import "html/template"

// Page templates. The templates are the only place DOM structure
// lives; controllers hand them fully-built instructions.
var pageTemplates = template.Must(template.New("dashboard").Parse(headerTmpl + footerTmpl + homeTmpl + comparisonTmpl + errorTmpl))

const headerTmpl = `{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>luftviz — {{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
nav a { margin-right: 1rem; }
.slot { display: inline-block; vertical-align: top; width: 45%; margin-right: 2%; }
.chart { min-height: 240px; border: 1px solid #ddd; margin-top: 1rem; padding: 0.5rem; }
.placeholder { color: #777; }
.failed { color: #a00; }
</style>
</head>
<body>
<nav>
<a id="nav-home" href="/view/">Home</a>
<a id="nav-day-of-week" href="/view/dayofweek/sensor1=&amp;date1=&amp;sensor2=&amp;date2=">Best/worst times of the week</a>
<a id="nav-over-time" href="/view/overtime/sensor1=&amp;date1=&amp;sensor2=&amp;date2=">Air quality over time</a>
</nav>
<h1 id="page-title">{{.Title}}</h1>
{{end}}`

const footerTmpl = `{{define "footer"}}</body>
</html>
{{end}}`

const homeTmpl = `{{define "home"}}{{template "header" .}}
<p>Pick a page above to compare air-quality sensors.</p>
{{template "footer" .}}{{end}}`

const errorTmpl = `{{define "error"}}{{template "header" .}}
<p class="failed">{{.Message}}</p>
{{template "footer" .}}{{end}}`

const comparisonTmpl = `{{define "comparison"}}{{template "header" .}}
{{$route := .RouteKey}}
{{range .Controls}}
<div class="slot">
<select id="sensor-{{$route}}-{{.SlotID}}" onchange="navigate('{{$route}}')">
{{range .SensorOptions}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
{{if .DateOptions}}<select id="date-{{$route}}-{{.SlotID}}" onchange="navigate('{{$route}}')">
{{range .DateOptions}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>{{end}}
</div>
{{end}}
<div>
{{range .Charts}}
<div class="slot chart" id="chart-{{.SlotID}}">
{{if eq .Status "awaiting"}}<p class="placeholder">{{.Message}}</p>
{{else if eq .Status "missing"}}<p class="placeholder">{{.Message}}</p>
{{else if eq .Status "stale"}}<p class="placeholder">{{.Message}}</p>
{{else if eq .Status "failed"}}<p class="failed">{{.Message}}</p>
{{else if eq .Status "url"}}<script>luftviz.dayOfWeekCircular.render("#chart-{{.SlotID}}", "{{.DataURL}}", "{{.ValueField}}");</script>
{{else if eq .Status "rows"}}<script>luftviz.chart24hourmean.render("#chart-{{.SlotID}}", {{.RowsJSON}}, "value", {domain: {{.DomainJSON}}, limit: {{.Limit}}});</script>
{{end}}
</div>
{{end}}
</div>
<script>
function navigate(route) {
	var parts = [];
	for (var i = 1; i <= 2; i++) {
		var sensor = document.getElementById("sensor-" + route + "-" + i);
		var date = document.getElementById("date-" + route + "-" + i);
		parts.push("sensor" + i + "=" + (sensor ? sensor.value : ""));
		parts.push("date" + i + "=" + (date ? date.value : ""));
	}
	window.location = "/view/" + route + "/" + parts.join("&");
}
</script>
{{template "footer" .}}{{end}}`
