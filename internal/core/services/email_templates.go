package services

import (
	"bytes"
	"fmt"
	"html/template"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "activation"}}<h4>Please use the following link to activate your account:</h4>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>The link expires in {{.Expiry}}.</p>
<hr />
<p>This email may contain sensitive information</p>
<p>{{.ClientURL}}</p>{{end}}

{{define "reset"}}<h4>Please use the following link to reset your password:</h4>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>The link expires in {{.Expiry}}.</p>
<hr />
<p>This email may contain sensitive information</p>
<p>{{.ClientURL}}</p>{{end}}

{{define "contact"}}<h4>{{.Heading}}</h4>
<p>Sender name: {{.Name}}</p>
<p>Sender email: {{.Email}}</p>
<p>Sender message: {{.Message}}</p>
<hr />
<p>This email may contain sensitive information</p>
<p>{{.ClientURL}}</p>{{end}}
`))

type linkEmailData struct {
	Link      string
	Expiry    string
	ClientURL string
}

type contactEmailData struct {
	Heading   string
	Name      string
	Email     string
	Message   string
	ClientURL string
}

// renderEmail executes a named template. html/template escapes all user content.
func renderEmail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
