// Package filesystem provides the filesystem abstraction used for side
// content and script output.
//
// Key interface:
//   - FileSystemProvider: read, stat, create directories, write atomically
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for testing
package filesystem
