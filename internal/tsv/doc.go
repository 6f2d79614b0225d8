// Package tsv opens IMDb dataset files for streaming.
//
// Files ending in .gz are decompressed on the fly; everything else is read
// as-is. The reader hands out the header line first, then streams the
// remaining bytes without ever buffering the whole file. A SHA-256 of the
// decompressed content accumulates as a side effect of reading.
package tsv
