// Package cache provides a small generic LRU cache.
//
//	c := cache.New[int, filter.Kernel](128)
//	k := c.GetOrCreate(key, func() filter.Kernel { return build(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
