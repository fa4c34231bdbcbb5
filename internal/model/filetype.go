package model

import "strings"

// FileCategory represents a high-level file type category.
type FileCategory int

const (
	CatOther FileCategory = iota
	CatCode
	CatStyle
	CatMarkup
	CatMedia
	CatFont
	CatData
	CatDoc
)

// CategoryName returns the display name for a category.
func CategoryName(cat FileCategory) string {
	switch cat {
	case CatCode:
		return "Code"
	case CatStyle:
		return "Styles"
	case CatMarkup:
		return "Markup"
	case CatMedia:
		return "Media"
	case CatFont:
		return "Fonts"
	case CatData:
		return "Data"
	case CatDoc:
		return "Docs"
	default:
		return "Other"
	}
}

// CategoryColor returns the theme color for a category.
func CategoryColor(cat FileCategory) string {
	switch cat {
	case CatCode:
		return "#61AFEF" // Blue
	case CatStyle:
		return "#C678DD" // Purple
	case CatMarkup:
		return "#D19A66" // Orange
	case CatMedia:
		return "#E06C75" // Red
	case CatFont:
		return "#56B6C2" // Cyan
	case CatData:
		return "#E5C07B" // Yellow
	case CatDoc:
		return "#98C379" // Green
	default:
		return "#ABB2BF" // Gray
	}
}

// Categories lists every category in display order.
var Categories = []FileCategory{
	CatCode, CatStyle, CatMarkup, CatMedia, CatFont, CatData, CatDoc, CatOther,
}

// extMap maps file extensions to categories.
var extMap = map[string]FileCategory{
	// Code
	".go": CatCode, ".py": CatCode, ".js": CatCode, ".jsx": CatCode,
	".ts": CatCode, ".tsx": CatCode, ".mjs": CatCode, ".cjs": CatCode,
	".rs": CatCode, ".c": CatCode, ".cpp": CatCode, ".cc": CatCode,
	".h": CatCode, ".hpp": CatCode, ".java": CatCode, ".kt": CatCode,
	".swift": CatCode, ".rb": CatCode, ".php": CatCode, ".cs": CatCode,
	".scala": CatCode, ".clj": CatCode, ".ex": CatCode, ".exs": CatCode,
	".erl": CatCode, ".hs": CatCode, ".ml": CatCode, ".lua": CatCode,
	".r": CatCode, ".dart": CatCode, ".vue": CatCode, ".svelte": CatCode,
	".astro": CatCode, ".sql": CatCode, ".sh": CatCode, ".bash": CatCode,
	".zsh": CatCode, ".fish": CatCode, ".ps1": CatCode, ".bat": CatCode,
	".cmd": CatCode, ".zig": CatCode, ".nim": CatCode, ".pl": CatCode,
	".pm": CatCode, ".groovy": CatCode, ".gradle": CatCode,

	// Styles
	".css": CatStyle, ".scss": CatStyle, ".sass": CatStyle, ".less": CatStyle,
	".styl": CatStyle, ".pcss": CatStyle,

	// Markup
	".html": CatMarkup, ".htm": CatMarkup, ".xhtml": CatMarkup,
	".xml": CatMarkup, ".xsl": CatMarkup, ".jsp": CatMarkup,
	".hbs": CatMarkup, ".ejs": CatMarkup, ".pug": CatMarkup,
	".twig": CatMarkup, ".erb": CatMarkup,

	// Media - Images
	".jpg": CatMedia, ".jpeg": CatMedia, ".png": CatMedia, ".gif": CatMedia,
	".bmp": CatMedia, ".svg": CatMedia, ".webp": CatMedia, ".ico": CatMedia,
	".tiff": CatMedia, ".tif": CatMedia, ".psd": CatMedia, ".heic": CatMedia,
	".avif": CatMedia,
	// Media - Video
	".mp4": CatMedia, ".mkv": CatMedia, ".avi": CatMedia, ".mov": CatMedia,
	".webm": CatMedia, ".m4v": CatMedia, ".mpg": CatMedia, ".mpeg": CatMedia,
	// Media - Audio
	".mp3": CatMedia, ".flac": CatMedia, ".wav": CatMedia, ".aac": CatMedia,
	".ogg": CatMedia, ".m4a": CatMedia, ".opus": CatMedia,

	// Fonts
	".woff": CatFont, ".woff2": CatFont, ".ttf": CatFont, ".otf": CatFont,
	".eot": CatFont,

	// Data
	".json": CatData, ".yaml": CatData, ".yml": CatData, ".toml": CatData,
	".csv": CatData, ".tsv": CatData, ".proto": CatData, ".graphql": CatData,
	".gql": CatData, ".env": CatData, ".ini": CatData, ".cfg": CatData,
	".conf": CatData, ".properties": CatData,

	// Docs
	".md": CatDoc, ".mdx": CatDoc, ".rst": CatDoc, ".txt": CatDoc,
	".adoc": CatDoc, ".tex": CatDoc, ".pdf": CatDoc, ".rtf": CatDoc,
}

// ClassifyFile returns the category for a given filename.
func ClassifyFile(name string) FileCategory {
	ext := strings.ToLower(getExt(name))
	if cat, ok := extMap[ext]; ok {
		return cat
	}
	return CatOther
}

// GetExtension returns the lowercase extension of a filename.
func GetExtension(name string) string {
	return strings.ToLower(getExt(name))
}

func getExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
		if name[i] == '/' {
			break
		}
	}
	return ""
}
