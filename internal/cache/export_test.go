package cache

// Exported for testing in external test package (cache_test).

// RistrettoWait blocks until pending writes of a ristretto-backed Cache are applied.
// It is a no-op for other backends.
func RistrettoWait(c Cache) {
	if r, ok := c.(*ristrettoCache); ok {
		r.cache.Wait()
	}
}
