package tabular

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/oklog/ulid/v2"
)

// FileName builds a download name such as "acme-hareketler_01J...xlsx".
func FileName(title, ext string) string {
	base := slug.Make(title)
	if base == "" {
		base = "report"
	}
	return base + "_" + strings.ToLower(ulid.Make().String()) + "." + strings.TrimPrefix(ext, ".")
}
