// Package checksum fingerprints dataset files as they stream into the
// database.
//
// Every load records the SHA-256 of the decompressed file content in the
// load history table. The digest is fed incrementally from the read path
// of the streaming copy, so fingerprinting adds no extra pass over the
// data.
//
// # Example Usage
//
//	digest := checksum.New()
//	reader := io.TeeReader(source, digest)
//	// ... stream reader to completion ...
//	fingerprint := digest.Sum()
//
// # Thread Safety
//
// A Digest is not safe for concurrent use. Each stream gets its own.
package checksum
