// Package assets provides the stylesheet injected into HTML previews.
//
// A style is either the name of a chroma theme or a path to a CSS file:
//
//	github            embedded base.css + chroma classes for "github"
//	./preview.css     the file as-is, nothing embedded added
//
// Theme CSS targets the class names goldmark-highlighting emits when
// chroma runs with WithClasses(true), so the preview carries no inline
// colours and switching themes only swaps the stylesheet.
package assets
