package http

import (
	"strings"

	"braces.dev/errtrace"
)

func mk(typ, sub string, params ...Param) MediaType {
	return MediaType{typ: typ, sub: sub, params: params}
}

// Well-known media types.
var (
	Any            = mk("*", "*")
	Binary         = mk("application", "octet-stream")
	HTML           = mk("text", "html", Param{Name: "charset", Value: "utf-8"})
	Plain          = mk("text", "plain", Param{Name: "charset", Value: "utf-8"})
	JSON           = mk("application", "json")
	MsgPack        = mk("application", "msgpack")
	FormURLEncoded = mk("application", "x-www-form-urlencoded")
	JavaScript     = mk("text", "javascript")
	CSS            = mk("text", "css", Param{Name: "charset", Value: "utf-8"})
	FormData       = mk("multipart", "form-data")
	XML            = mk("text", "xml", Param{Name: "charset", Value: "utf-8"})
	CSV            = mk("text", "csv", Param{Name: "charset", Value: "utf-8"})
	PNG            = mk("image", "png")
	GIF            = mk("image", "gif")
	BMP            = mk("image", "bmp")
	JPEG           = mk("image", "jpeg")
	WEBP           = mk("image", "webp")
	SVG            = mk("image", "svg+xml")
	Icon           = mk("image", "x-icon")
	TIFF           = mk("image", "tiff")
	WEBM           = mk("video", "webm")
	MP4            = mk("video", "mp4")
	MPEG           = mk("video", "mpeg")
	MOV            = mk("video", "quicktime")
	WEBA           = mk("audio", "webm")
	OGG            = mk("video", "ogg")
	FLAC           = mk("audio", "flac")
	WAV            = mk("audio", "wav")
	AAC            = mk("audio", "aac")
	PDF            = mk("application", "pdf")
	TTF            = mk("application", "font-sfnt")
	OTF            = mk("font", "otf")
	WOFF           = mk("font", "woff")
	WOFF2          = mk("font", "woff2")
	JSONAPI        = mk("application", "vnd.api+json")
	WASM           = mk("application", "wasm")
	Calendar       = mk("text", "calendar")
	TAR            = mk("application", "x-tar")
	GZIP           = mk("application", "gzip")
	ZIP            = mk("application", "zip")
)

var knownTypes = []MediaType{
	Any, Binary, HTML, Plain, JSON, MsgPack, FormURLEncoded, JavaScript, CSS, FormData,
	XML, CSV, PNG, GIF, BMP, JPEG, WEBP, SVG, Icon, TIFF, WEBM, MP4, MPEG, MOV,
	WEBA, OGG, FLAC, WAV, AAC, PDF, TTF, OTF, WOFF, WOFF2, JSONAPI, WASM,
	Calendar, TAR, GZIP, ZIP,
}

// shorthands maps the names accepted by ParseFlexible.
var shorthands = map[string]MediaType{
	"any":        Any,
	"binary":     Binary,
	"html":       HTML,
	"plain":      Plain,
	"text":       Plain,
	"json":       JSON,
	"msgpack":    MsgPack,
	"form":       FormURLEncoded,
	"js":         JavaScript,
	"javascript": JavaScript,
	"css":        CSS,
	"multipart":  FormData,
	"xml":        XML,
	"csv":        CSV,
	"png":        PNG,
	"gif":        GIF,
	"bmp":        BMP,
	"jpeg":       JPEG,
	"jpg":        JPEG,
	"webp":       WEBP,
	"svg":        SVG,
	"icon":       Icon,
	"tiff":       TIFF,
	"webm":       WEBM,
	"mp4":        MP4,
	"mpeg":       MPEG,
	"mov":        MOV,
	"weba":       WEBA,
	"ogg":        OGG,
	"flac":       FLAC,
	"wav":        WAV,
	"aac":        AAC,
	"pdf":        PDF,
	"ttf":        TTF,
	"otf":        OTF,
	"woff":       WOFF,
	"woff2":      WOFF2,
	"jsonapi":    JSONAPI,
	"wasm":       WASM,
	"calendar":   Calendar,
	"tar":        TAR,
	"gzip":       GZIP,
	"zip":        ZIP,
}

var extensions = map[string]MediaType{
	"txt":   Plain,
	"html":  HTML,
	"htm":   HTML,
	"xml":   XML,
	"csv":   CSV,
	"js":    JavaScript,
	"mjs":   JavaScript,
	"css":   CSS,
	"json":  JSON,
	"png":   PNG,
	"gif":   GIF,
	"bmp":   BMP,
	"jpeg":  JPEG,
	"jpg":   JPEG,
	"webp":  WEBP,
	"svg":   SVG,
	"ico":   Icon,
	"tif":   TIFF,
	"tiff":  TIFF,
	"webm":  WEBM,
	"mp4":   MP4,
	"mpeg":  MPEG,
	"mpg":   MPEG,
	"mov":   MOV,
	"weba":  WEBA,
	"ogg":   OGG,
	"ogv":   OGG,
	"flac":  FLAC,
	"wav":   WAV,
	"aac":   AAC,
	"pdf":   PDF,
	"ttf":   TTF,
	"otf":   OTF,
	"woff":  WOFF,
	"woff2": WOFF2,
	"wasm":  WASM,
	"ics":   Calendar,
	"tar":   TAR,
	"gz":    GZIP,
	"zip":   ZIP,
	"bin":   Binary,
	"exe":   Binary,
	"iso":   Binary,
	"dmg":   Binary,
}

// ParseFlexible parses s either as a shorthand name such as "json" or
// "html" (case-insensitive) or as a full media type.
func ParseFlexible(s string) (MediaType, error) {
	if mt, ok := shorthands[strings.ToLower(strings.TrimSpace(s))]; ok {
		return mt, nil
	}
	mt, err := ParseMediaType(s)
	if err != nil {
		return MediaType{}, errtrace.Wrap(err)
	}
	return mt, nil
}

// FromExtension returns the media type for a file extension, without the
// leading dot. The lookup is case-insensitive.
func FromExtension(ext string) (MediaType, bool) {
	mt, ok := extensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return mt, ok
}

// IsKnown reports whether mt equals one of the predefined media types.
func (mt MediaType) IsKnown() bool {
	for _, k := range knownTypes {
		if mt.Equal(k) {
			return true
		}
	}
	return false
}
