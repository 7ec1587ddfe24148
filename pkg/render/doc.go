// Package render turns CMS content into HTML.
//
// Pages are rendered block by block through a Registry that maps component
// slugs to renderers; blocks without a renderer get a generic fallback.
// Forms are rendered from a form.State snapshot, so the same markup serves
// every stage of a submission. All output is produced by the embedded
// templates and is HTML escaped, except rich text, which is sanitized.
package render
