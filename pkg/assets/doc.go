// Package assets resolves downloadable files, such as the resume, to URLs.
//
// [Local] points at files served by the app's static handler. [S3] points at
// objects in an S3-compatible bucket. It checks that the object exists,
// presigns a GET and caches the URL for most of its lifetime. Concurrent
// misses for the same object share one presign.
package assets
