// Package files groups file-related sub-packages.
//
//   - filesystem: filesystem abstraction (OS and in-memory) for reading side
//     content and writing scripts
package files
