// Package web renders the prediction form and its result panel from embedded
// templates. Templates are parsed once at startup so a broken template fails
// the process before it serves traffic.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strconv"

	"github.com/Skufu/alzrisk/internal/patient"
	"github.com/Skufu/alzrisk/internal/predictor"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Layout is the name of the root template passed to gin's HTML renderer.
const Layout = "layout"

const title = "Alzheimer's Disease Prediction"

// Page is the data a render of the form receives.
type Page struct {
	Title    string
	Sections []patient.Section
	Values   map[string]string
	Result   *ResultView
	Errors   []string
}

type ResultView struct {
	HighRisk bool
	Message  string
	Percent  string
}

// Templates parses the embedded layout and form templates.
func Templates() (*template.Template, error) {
	t, err := template.New(Layout).Funcs(template.FuncMap{
		"num": formatNumber,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Static returns the embedded stylesheet directory.
func Static() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	return sub, nil
}

// NewPage builds the form page for in, with an optional result.
func NewPage(in patient.Input, res *predictor.Result) Page {
	p := Page{
		Title:    title,
		Sections: patient.Sections(),
		Values:   in.Values(),
	}
	if res != nil {
		p.Result = &ResultView{
			HighRisk: res.HighRisk(),
			Message:  res.Message(),
			Percent:  res.Percent(),
		}
	}
	return p
}

// ErrorPage re-renders the submitted values with error messages.
func ErrorPage(in patient.Input, errs ...string) Page {
	p := NewPage(in, nil)
	p.Errors = errs
	return p
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
