// Package render turns the narrative fields of a port guide into HTML for
// the upload preview.
package render

import (
	"bytes"
	"fmt"

	"github.com/limitlesscruises/portguide/internal/portguide"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
)

// Markdown converts Markdown source to HTML.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Narrative renders every non-empty free-text field of g, keyed by the
// field's JSON name.
func Narrative(g *portguide.PortGuide) (map[string]string, error) {
	fields := []struct {
		key  string
		text string
	}{
		{"description", g.Description},
		{"aboutPort", g.AboutPort.Text},
		{"transportConnections", g.TransportConnections.Text},
		{"gettingAround", g.GettingAround.Text},
		{"contentOverview", g.ContentOverview},
		{"contentStayLocal", g.ContentStayLocal},
		{"contentGoFurther", g.ContentGoFurther},
		{"contentWithKids", g.ContentWithKids},
		{"contentAccessibility", g.ContentAccessibility},
		{"contentMedical", g.ContentMedical},
		{"contentFoodDrink", g.ContentFoodDrink},
	}

	out := make(map[string]string)
	for _, f := range fields {
		if f.text == "" {
			continue
		}
		html, err := Markdown(f.text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		out[f.key] = html
	}
	return out, nil
}
