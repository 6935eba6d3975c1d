package draw

// Exported for testing in external test package (draw_test).

// CheckRange is the exported version of checkRange for testing.
var CheckRange = checkRange

// CacheKey exposes the memoisation key of a CachedSelector.
func (c *CachedSelector) CacheKey(poolSize int, entropy string) string {
	return c.key(poolSize, entropy)
}
