package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

// Certification is the only template the account service sends: the
// sign-up email carrying the certification code and verify link.
const Certification = "certification"

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	if value == nil {
		return fallback
	}
	return value
}

func baseFuncs() map[string]any {
	return map[string]any{
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// Render renders the named template and returns subject, text and HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case Certification:
		subject = "Please certify your account"
	default:
		return "", "", "", fmt.Errorf("unknown email template: %s", name)
	}

	text, err = renderText(name+".text.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderHTML(name+".html.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

func renderHTML(file string, data map[string]any) (string, error) {
	t, err := htmpl.New(file).Funcs(htmlFuncMap).ParseFS(FS, file)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, file, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderText(file string, data map[string]any) (string, error) {
	t, err := texttpl.New(file).Funcs(textFuncMap).ParseFS(FS, file)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, file, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
