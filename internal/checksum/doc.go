// Package checksum hashes upgrade fragment content.
//
// The header of every generated script carries a manifest of the fragments it
// contains together with an abbreviated SHA-256 of each one, so a reviewer
// can tell two generated scripts apart without diffing them line by line.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.Sum(content)
//	fmt.Println(checksum.Short(sum, 12))
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
