// Package assets provides the cms.AssetBucket implementations uploaded images are stored in.
package assets

import (
	"fmt"
	"net/url"
	"strings"
)

// ServePrefix is the HTTP path under which the server streams assets held by
// buckets without their own public endpoint.
const ServePrefix = "/assets/"

// validName rejects object names that could escape the bucket.
func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid asset name: %q", name)
	}
	return nil
}

// servedURL returns the URL the server streams name from, below base.
func servedURL(base, name string) string {
	return strings.TrimRight(base, "/") + ServePrefix + url.PathEscape(name)
}
