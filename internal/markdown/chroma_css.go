package markdown

import (
	"bytes"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	chromaLightStyle = "github"
	chromaDarkStyle  = "github-dark"
)

var (
	chromaCSSOnce sync.Once
	chromaCSS     string
)

// ChromaCSS returns the stylesheet for highlighted code blocks, switching
// palettes with the user's color scheme.
func ChromaCSS() string {
	chromaCSSOnce.Do(func() {
		chromaCSS = buildChromaCSS()
	})

	return chromaCSS
}

func buildChromaCSS() string {
	var out strings.Builder
	for _, variant := range []struct {
		scheme string
		style  string
	}{
		{scheme: "light", style: chromaLightStyle},
		{scheme: "dark", style: chromaDarkStyle},
	} {
		css := buildSingleStyleCSS(variant.style)
		if css == "" {
			continue
		}
		out.WriteString("@media (prefers-color-scheme: " + variant.scheme + ") {\n")
		out.WriteString(css)
		out.WriteString("}\n")
	}

	return out.String()
}

func buildSingleStyleCSS(styleName string) string {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var buffer bytes.Buffer
	if err := formatter.WriteCSS(&buffer, style); err != nil {
		return ""
	}

	return buffer.String()
}
