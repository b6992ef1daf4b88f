// Package version provides semantic version parsing and comparison with flexible precision support.
//
// # Overview
//
// This package implements a subset of semantic versioning (semver.org) with a focus on
// precision-aware version comparison. It supports three precision levels:
//
//   - Major only (e.g., "1" or "v1")
//   - Major.Minor (e.g., "1.2" or "v1.2")
//   - Major.Minor.Patch (e.g., "1.2.3" or "v1.2.3")
//
// The key feature is precision-aware comparison: a version with lower precision acts as a
// wildcard for missing components. For example:
//
//   - v1 matches v1.0.0, v1.5.0, v1.99.99 (any minor/patch)
//   - v1.2 matches v1.2.0, v1.2.1, v1.2.99 (any patch)
//   - v1.2.3 matches only v1.2.3 exactly
//
// Harness releases and the implementations they exercise both report versions in these
// forms, often with prerelease or build suffixes ("1.35.0-rc.1", "0.4.0+build.17") that
// are preserved but never compared.
//
// # Usage
//
// Parse a version string:
//
//	v, err := version.ParseVersion("v1.2.3")
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(v.String()) // Output: 1.2.3
//
// Compare versions:
//
//	reported, _ := version.ParseVersion("1.35.2")
//	verified, _ := version.ParseVersion("1.35.0")
//	if reported.IsNewer(verified) {
//	    fmt.Println("Log produced by a newer harness")
//	}
//
// Create versions programmatically:
//
//	v := version.NewVersion(1, 2, 3)
//	fmt.Println(v.String()) // Output: 1.2.3
//
// # Precision Semantics
//
// The Precision field determines how many components are significant:
//
//   - Precision 1: Only Major is significant (Minor/Patch ignored in comparisons)
//   - Precision 2: Major and Minor are significant (Patch ignored)
//   - Precision 3: All components are significant
//
// When comparing versions, the comparison uses the lower precision of the two versions.
// This allows a version like "1.2" to match "1.2.0", "1.2.1", etc.
//
// # Semantic Versioning Compatibility
//
// This package implements a subset of semantic versioning:
//
// Supported:
//   - Major.Minor.Patch version components
//   - Optional "v" prefix
//   - Flexible precision (1-3 components)
//   - Numeric version components
//   - Prerelease and build suffixes, preserved verbatim in Extras
//
// Not Supported (may be added in future):
//   - Prerelease precedence in comparisons (e.g., "1.2.3-alpha" < "1.2.3")
//   - Version ranges or constraints
//
// # Error Handling
//
// The ParseVersion function returns specific errors for different failure modes:
//
//   - ErrEmptyVersion: Input string is empty
//   - ErrTooManyComponents: More than 3 version components
//   - ErrNonNumeric: Component contains non-numeric characters
//   - ErrNegativeComponent: Component is a negative number
//
// For constant initialization, use MustParseVersion which panics on error:
//
//	var VerifiedHarness = version.MustParseVersion("1.35.0")
package version
