package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

const orderText = `New order from {{.Contact.FullName}}

Email:   {{.Contact.Email}}
Phone:   {{.Contact.Phone}}
{{- with .Contact.Company}}
Company: {{.}}{{end}}
{{- with .Contact.Message}}

Notes:
{{.}}{{end}}

Total garments: {{.Total}}
{{range .Items}}
Item {{.Number}}: {{.Garment}} ({{.SizeCategory}}), {{.Quantity}} pcs
{{- with .Material}}
  Material: {{.}}{{end}}
{{- with .Cotton}}
  Cotton:   {{.}}{{end}}
{{- with .Brand}}
  Brand:    {{.}}{{end}}
  Sizes:
{{- range .Sizes}}
    {{.Size}} / {{.Color}}: {{.Quantity}}{{end}}
  Print locations:
{{- range .Locations}}
    {{.Label}}: {{.Design}}{{end}}
{{end}}`

const orderHTML = `<h2>New order from {{.Contact.FullName}}</h2>
<p>
  Email: <a href="mailto:{{.Contact.Email}}">{{.Contact.Email}}</a><br>
  Phone: {{.Contact.Phone}}
  {{- with .Contact.Company}}<br>Company: {{.}}{{end}}
</p>
{{with .Contact.Message}}<p><strong>Notes:</strong> {{.}}</p>{{end}}
<p><strong>Total garments:</strong> {{.Total}}</p>
{{range .Items}}
<h3>Item {{.Number}}: {{.Garment}} ({{.SizeCategory}}), {{.Quantity}} pcs</h3>
<ul>
  {{with .Material}}<li>Material: {{.}}</li>{{end}}
  {{with .Cotton}}<li>Cotton: {{.}}</li>{{end}}
  {{with .Brand}}<li>Brand: {{.}}</li>{{end}}
</ul>
<table border="1" cellpadding="4" cellspacing="0">
  <tr><th>Size</th><th>Color</th><th>Qty</th></tr>
  {{range .Sizes}}<tr><td>{{.Size}}</td><td>{{.Color}}</td><td>{{.Quantity}}</td></tr>{{end}}
</table>
<p>Print locations:</p>
<ul>
  {{range .Locations}}<li>{{.Label}}: {{.Design}}</li>{{end}}
</ul>
{{end}}`

const contactText = `Contact form message

From:    {{.Name}} <{{.Email}}>
Subject: {{.Subject}}

{{.Message}}
`

const contactHTML = `<h2>Contact form message</h2>
<p>From: {{.Name}} &lt;<a href="mailto:{{.Email}}">{{.Email}}</a>&gt;<br>
Subject: {{.Subject}}</p>
<p style="white-space: pre-wrap">{{.Message}}</p>`

var (
	orderTextTmpl   = texttemplate.Must(texttemplate.New("order.txt").Parse(orderText))
	orderHTMLTmpl   = htmltemplate.Must(htmltemplate.New("order.html").Parse(orderHTML))
	contactTextTmpl = texttemplate.Must(texttemplate.New("contact.txt").Parse(contactText))
	contactHTMLTmpl = htmltemplate.Must(htmltemplate.New("contact.html").Parse(contactHTML))
)

func renderOrder(v orderView) (string, string, error) {
	return render(orderTextTmpl, orderHTMLTmpl, v)
}

func renderContact(c domain.ContactMessage) (string, string, error) {
	return render(contactTextTmpl, contactHTMLTmpl, c)
}

func render(text *texttemplate.Template, html *htmltemplate.Template, data any) (string, string, error) {
	var tb, hb bytes.Buffer
	if err := text.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", text.Name(), err)
	}
	if err := html.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", html.Name(), err)
	}
	return tb.String(), hb.String(), nil
}
