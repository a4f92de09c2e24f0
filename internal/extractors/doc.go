// Package extractors converts attachment payloads into plain text under
// strict resource bounds.
//
// Extraction is dispatched by filename extension. Unsupported extensions
// yield empty text, not an error. Format-specific extractors live in
// subpackages; every failure mode degrades to a typed outcome instead of an
// error so one hostile attachment can never abort a run.
package extractors
