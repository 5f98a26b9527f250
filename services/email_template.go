package services

import (
	"ainrion_site_go/templates/emails"
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
)

// emailTemplates is the template source; tests swap it for an in-memory FS
var emailTemplates fs.FS = emails.FS

var htmlFuncs = htmltemplate.FuncMap{
	// nl2br escapes the text and keeps its line breaks as <br> tags
	"nl2br": func(s string) htmltemplate.HTML {
		return htmltemplate.HTML(nl2br(htmltemplate.HTMLEscapeString(s)))
	},
}

// loadTemplate renders templateName + "_" + lang + ".html/.txt", falling back
// to templateName + ".html/.txt" when no localized file exists.
// HTML templates auto-escape their data; text templates do not.
func loadTemplate(templateName string, lang string, data interface{}) (html string, text string, err error) {
	htmlContent, err := renderTemplateFile(templateName, lang, ".html", data)
	if err != nil {
		return "", "", err
	}

	textContent, err := renderTemplateFile(templateName, lang, ".txt", data)
	if err != nil {
		return "", "", err
	}

	return htmlContent, textContent, nil
}

func renderTemplateFile(templateName, lang, ext string, data interface{}) (string, error) {
	path := fmt.Sprintf("%s_%s%s", templateName, lang, ext)
	content, err := fs.ReadFile(emailTemplates, path)
	if err != nil {
		path = templateName + ext
		content, err = fs.ReadFile(emailTemplates, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template %s: %w", path, err)
		}
	}

	var buf bytes.Buffer
	if ext == ".html" {
		tmpl, err := htmltemplate.New(path).Funcs(htmlFuncs).Parse(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to execute template %s: %w", path, err)
		}
		return buf.String(), nil
	}

	tmpl, err := texttemplate.New(path).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", path, err)
	}
	return buf.String(), nil
}
