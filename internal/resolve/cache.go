package resolve

// Cache memoizes artist and album directories for one run. Keys are the
// names as requested, not the directories they resolved to. The first store
// for a key wins.
type Cache struct {
	artists map[string]string
	albums  map[albumKey]string
}

type albumKey struct {
	artist string
	album  string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		artists: make(map[string]string),
		albums:  make(map[albumKey]string),
	}
}

// Artist returns the cached directory for artist.
func (c *Cache) Artist(artist string) (string, bool) {
	if c == nil {
		return "", false
	}
	dir, ok := c.artists[artist]
	return dir, ok
}

// StoreArtist records dir for artist unless an entry already exists.
func (c *Cache) StoreArtist(artist, dir string) {
	if c == nil {
		return
	}
	if _, ok := c.artists[artist]; !ok {
		c.artists[artist] = dir
	}
}

// Album returns the cached directory for album by artist.
func (c *Cache) Album(artist, album string) (string, bool) {
	if c == nil {
		return "", false
	}
	dir, ok := c.albums[albumKey{artist: artist, album: album}]
	return dir, ok
}

// StoreAlbum records dir for album by artist unless an entry already exists.
func (c *Cache) StoreAlbum(artist, album, dir string) {
	if c == nil {
		return
	}
	key := albumKey{artist: artist, album: album}
	if _, ok := c.albums[key]; !ok {
		c.albums[key] = dir
	}
}

// Len returns the number of cached artist and album entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.artists) + len(c.albums)
}
