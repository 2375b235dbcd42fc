package main

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const htmlMime = "text/html"

// newMinifier returns an HTML minifier. keepComments preserves comments so
// fence markers survive minification of editable output.
func newMinifier(keepComments bool) *minify.M {
	m := minify.New()
	m.Add(htmlMime, &html.Minifier{
		KeepComments:     keepComments,
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

func minifyHTML(document string, keepComments bool) (string, error) {
	out, err := newMinifier(keepComments).String(htmlMime, document)
	if err != nil {
		return "", fmt.Errorf("minify: %w", err)
	}
	return out, nil
}
