// Package export turns a finished wizard session into downloadable artifacts:
// tabular CSV/XLSX, the HTML-backed DOCX report, a Markdown summary and the
// RIPD text draft. Exporters are pure (Input -> Artifact); persisting the
// artifact is the Saver's job and the Dispatcher ties both together.
package export
