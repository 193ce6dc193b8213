package minify

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Minifier shrinks HTML/CSS/JS assets on their way to the output directory.
// Content inside pre/script/style survives HTML minification; comments do not.
type Minifier struct {
	m *minify.M
}

func New() *Minifier {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	return &Minifier{m: m}
}

func (mm *Minifier) HTML(src []byte) ([]byte, error) {
	return mm.m.Bytes("text/html", src)
}

func (mm *Minifier) CSS(src []byte) ([]byte, error) {
	return mm.m.Bytes("text/css", src)
}

func (mm *Minifier) JS(src []byte) ([]byte, error) {
	return mm.m.Bytes("application/javascript", src)
}
