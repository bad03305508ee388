package server

import (
	"html/template"
	"io"
)

type renderer interface {
	Execute(w io.Writer, data any) error
}

type indexPage struct {
	Names []string
}

type wakePage struct {
	Name          string
	MAC           string
	FailedTargets int
	TotalTargets  int
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Wake a Computer</title></head>
<body>
<h1>Click the PC name that you would like to wake.</h1>
{{- if .Names}}
<table>
{{- range .Names}}
<tr><td><a href="./{{.}}">{{.}}</a></td></tr>
{{- end}}
</table>
{{- else}}
<p>No computers are configured.</p>
{{- end}}
</body>
</html>
`))

var wakeTemplate = template.Must(template.New("wake").Parse(`<!DOCTYPE html>
<html>
<head><title>Wake a Computer</title></head>
<body>
<h1>Wake-on-LAN</h1>
<p>A wake-up request has been sent to {{.Name}} at {{.MAC}}</p>
{{- if .FailedTargets}}
<p>Warning: the packet could not be sent to {{.FailedTargets}} of {{.TotalTargets}} broadcast addresses.</p>
{{- end}}
<p>It usually takes a few minutes to wake a computer; if it takes more than five minutes, try again.</p>
<p><a href="./">Back</a></p>
</body>
</html>
`))
