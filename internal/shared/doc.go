// Package shared holds helpers used across edaclean packages that belong to
// no single domain package.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertLogContains(t, handler, slog.LevelInfo, "cleaning complete")
//	}
//
// Nothing here may import other edaclean packages, so every package can use
// it from tests without import cycles.
package shared
