// Package apperr defines shared error sentinels for subscan.
// It is a leaf package with no internal imports, allowing any package,
// down to low-level infrastructure like resolver, to use the sentinels
// without creating import cycles.
package apperr
