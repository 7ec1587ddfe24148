package render

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

var templateSet = pongo2.NewSet("cms-render", pongo2.NewFSLoader(templatesFS()))

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return templatesFS()
}

func templatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}

	return sub
}

func execute(w io.Writer, name string, data pongo2.Context) error {
	tmpl, err := templateSet.FromCache(name)
	if err != nil {
		return fmt.Errorf("loading template %s: %w", name, err)
	}

	err = tmpl.ExecuteWriter(data, w)
	if err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	return nil
}
