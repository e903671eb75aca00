// Package document turns stored source documents into plain text for the
// AI pipeline: a format-dispatched extractor for the supported upload
// types (PDF, DOCX, TXT) and a deterministic chunker that bounds segments
// to the model's context window.
package document
