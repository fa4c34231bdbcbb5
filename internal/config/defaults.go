package config

// Built-in defaults, tuned for the kind of mixed source/asset trees the
// tool is pointed at. A project config replaces any of these wholesale.

var defaultFileTypes = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".vue", ".svelte", ".astro",
	".css", ".scss", ".sass", ".less", ".styl",
	".html", ".htm", ".ejs", ".hbs", ".pug",
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".bmp", ".avif",
	".woff", ".woff2", ".ttf", ".otf", ".eot",
	".mp3", ".mp4", ".webm", ".wav", ".ogg",
	".json", ".yaml", ".yml", ".toml", ".graphql", ".gql",
	".md", ".mdx", ".txt",
	".py", ".rb", ".php", ".go", ".java", ".sh",
}

var defaultIgnoreFolders = []string{
	"node_modules", "vendor", "bower_components",
	"dist", "build", "out", "target", "coverage",
	".git", ".svn", ".hg",
	".idea", ".vscode",
	".next", ".nuxt", ".cache", ".parcel-cache",
	"__pycache__", "bin", "obj", "tmp",
}

var defaultIgnoreRootFiles = []string{
	FileName,
	"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	"tsconfig.json", "jsconfig.json",
	"webpack.config.js", "vite.config.js", "vite.config.ts",
	"rollup.config.js", "babel.config.js", "jest.config.js",
	".babelrc", ".eslintrc", ".eslintrc.js", ".eslintrc.json",
	".prettierrc", ".editorconfig", ".gitignore", ".gitattributes", ".env",
	"go.mod", "go.sum", "Makefile", "Dockerfile", "docker-compose.yml",
	"README.md", "LICENSE", "CHANGELOG.md",
	"favicon.ico", "robots.txt",
}
