package util

import "strings"

// FileIcon returns an icon based on file extension.
func FileIcon(name string) string {
	ext := strings.ToLower(getExt(name))
	if icon, ok := extIcons[ext]; ok {
		return icon
	}
	return "📄"
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

var extIcons = map[string]string{
	// Code
	".js":     "🟨",
	".jsx":    "⚛️",
	".ts":     "🔷",
	".tsx":    "⚛️",
	".mjs":    "🟨",
	".cjs":    "🟨",
	".vue":    "💚",
	".svelte": "🔥",
	".astro":  "🚀",
	".go":     "🐹",
	".py":     "🐍",
	".rb":     "💎",
	".php":    "🐘",
	".java":   "☕",
	".sh":     "🐚",

	// Styles and markup
	".css":  "🎨",
	".scss": "🎨",
	".sass": "🎨",
	".less": "🎨",
	".styl": "🎨",
	".html": "🌐",
	".htm":  "🌐",
	".xml":  "📋",
	".md":   "📝",
	".mdx":  "📝",

	// Images and fonts
	".png":   "🖼️",
	".jpg":   "🖼️",
	".jpeg":  "🖼️",
	".gif":   "🖼️",
	".svg":   "🖼️",
	".webp":  "🖼️",
	".avif":  "🖼️",
	".ico":   "🖼️",
	".bmp":   "🖼️",
	".woff":  "🔤",
	".woff2": "🔤",
	".ttf":   "🔤",
	".otf":   "🔤",
	".eot":   "🔤",

	// Audio and video
	".mp3":  "🎵",
	".wav":  "🎵",
	".ogg":  "🎵",
	".mp4":  "🎬",
	".webm": "🎬",
	".mov":  "🎬",

	// Data and documents
	".json": "📋",
	".yaml": "📋",
	".yml":  "📋",
	".toml": "📋",
	".csv":  "📊",
	".pdf":  "📕",
	".txt":  "📄",
}
