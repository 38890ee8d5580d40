package fiber

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v3"
)

type authorizeFormData struct {
	ClientID    string
	RedirectURI string
}

type resendFormData struct {
	Message string
}

var authorizeForm = template.Must(template.New("authorize").Parse(`<!DOCTYPE html>
<html>
  <head><title>Sign in</title></head>
  <body>
    <form method="post">
      <input type="text" name="username" placeholder="username"/>
      <input type="password" name="password" placeholder="password"/>
      <input type="hidden" name="client_id" value="{{.ClientID}}"/>
      <input type="hidden" name="redirect_uri" value="{{.RedirectURI}}"/>
      <input type="submit" value="Sign in"/>
    </form>
  </body>
</html>`))

var registerForm = template.Must(template.New("register").Parse(`<!DOCTYPE html>
<html>
  <head><title>Register</title></head>
  <body>
    <form method="post">
      <input type="text" name="username" placeholder="username"/>
      <input type="email" name="email" placeholder="email"/>
      <input type="password" name="password" placeholder="password"/>
      <input type="submit" value="Register"/>
    </form>
  </body>
</html>`))

var resendForm = template.Must(template.New("resend").Parse(`<!DOCTYPE html>
<html>
  <head><title>Resend activation</title></head>
  <body>
    {{if .Message}}<p>{{.Message}}</p>{{end}}
    <form method="post">
      <input type="text" name="username" placeholder="username"/>
      <input type="submit" value="Resend activation mail"/>
    </form>
  </body>
</html>`))

func renderHTML(c fiber.Ctx, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
