// Package lookup searches an encyclopedia for devices to add to the timeline.
//
// The Client talks to a MediaWiki action API (English Wikipedia by default).
// A search returns candidate device.LookupResult values with a detected
// category and release year. Lookups never fail loudly: network, status and
// decoding problems are logged at warn and yield an empty result.
//
// Usage:
//
//	client := lookup.New(lookup.Config{
//	    Endpoint:    "https://en.wikipedia.org/w/api.php",
//	    Timeout:     10 * time.Second,
//	    ResultLimit: 5,
//	})
//	results := client.Search(ctx, "nokia 3310")
package lookup
