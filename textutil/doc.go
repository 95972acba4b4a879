// Package textutil provides small text normalization helpers shared by the
// Phoenix services: markdown code-fence stripping for model output and
// filename sanitization for download/attachment handling.
package textutil
