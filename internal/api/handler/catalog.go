package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcus/scenevoice/internal/locale"
)

// CatalogHandler exposes the static language and voice catalogs so
// clients can populate pickers without hardcoding the tables.
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Languages handles GET /api/v1/languages.
func (h *CatalogHandler) Languages(c *gin.Context) {
	codes := locale.Supported()
	c.JSON(http.StatusOK, gin.H{
		"languages": codes,
		"default":   locale.Default,
		"total":     len(codes),
	})
}

// voiceEntry describes the voice options for one language.
type voiceEntry struct {
	Default string   `json:"default"`
	Voices  []string `json:"voices"`
	Locale  string   `json:"locale"`
}

// Voices handles GET /api/v1/voices. An optional ?language= query
// narrows the catalog to a single language.
func (h *CatalogHandler) Voices(c *gin.Context) {
	if code := c.Query("language"); code != "" {
		lang, ok := locale.Resolve(code)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid language code: " + code,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			lang.Code: voiceEntry{
				Default: lang.DefaultVoice,
				Voices:  lang.Voices,
				Locale:  lang.SpeechLocale,
			},
		})
		return
	}

	catalog := make(map[string]voiceEntry)
	for code, lang := range locale.All() {
		catalog[code] = voiceEntry{
			Default: lang.DefaultVoice,
			Voices:  lang.Voices,
			Locale:  lang.SpeechLocale,
		}
	}
	c.JSON(http.StatusOK, catalog)
}
