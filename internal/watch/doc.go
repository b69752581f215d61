// Package watch implements the srcwatch event loop: it observes a source
// tree recursively with fsnotify, filters events down to modifications of
// matching files, and dispatches each one into the transpile pipeline.
package watch
