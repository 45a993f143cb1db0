package snapsearch

// Messages holds the user-facing texts of the results page.
type Messages struct {
	NoQueryHeading    string
	NoQueryPrompt     string
	HeadingFormat     string // %s is the query display form
	Searching         string
	StatusFormat      string // %d is the match count
	NoResults         string
	NoDetail          string
	NoDescription     string
	DetailUnavailable string
	Apply             string
}

// DefaultMessages returns the built-in Spanish texts.
func DefaultMessages() Messages {
	return Messages{
		NoQueryHeading:    "Búsqueda global",
		NoQueryPrompt:     "Volvé al Home e ingresá un término.",
		HeadingFormat:     "Resultados para: \"%s\"",
		Searching:         "Buscando en todas las ciudades y páginas…",
		StatusFormat:      "Resultados encontrados: %d",
		NoResults:         "No se encontraron resultados.",
		NoDetail:          "Sin resultados para mostrar.",
		NoDescription:     "No hay descripción disponible para esta oferta.",
		DetailUnavailable: "No se pudo cargar el detalle de la oferta.",
		Apply:             "Postularme",
	}
}
