// Package fragment discovers numbered upgrade scripts between two git
// references and splits them into the ones folded into the main transaction
// and the ones moved after it.
//
// A fragment is collected when its file exists in the target reference's
// upgrade directory and either does not exist in the source reference or has
// different content there. Its sequence key is the integer its file name
// starts with ("1400.schema.foo.sql" has key 1400); keys order application
// and must be unique.
//
// Classification is a plain substring test of each fragment's path against
// the operator's move patterns, so "-m 1400" is enough to move
// "1400.schema.foo.sql".
package fragment
