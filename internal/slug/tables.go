package slug

import "github.com/firnco-tech/holacupid/backend/internal/domain"

// locationTranslations holds curated slug fragments for the high-traffic
// locations. Keys are matched verbatim against Profile.Location.
// Locations not listed here fall back to Normalize.
var locationTranslations = map[string]map[domain.Language]string{
	"Santo Domingo": sameInAll("santo-domingo"),
	"Santiago":      sameInAll("santiago"),
	"Puerto Plata":  sameInAll("puerto-plata"),
	"Punta Cana":    sameInAll("punta-cana"),
	"La Romana":     sameInAll("la-romana"),
	"Sosúa":         sameInAll("sosua"),
	"Cabarete":      sameInAll("cabarete"),
	"Boca Chica":    sameInAll("boca-chica"),
	"Bávaro":        sameInAll("bavaro"),
	"Higüey":        sameInAll("higuey"),
	"La Vega":       sameInAll("la-vega"),
	"Juan Dolio":    sameInAll("juan-dolio"),

	"San Pedro de Macorís": sameInAll("san-pedro-de-macoris"),

	"Distrito Nacional": {
		domain.English:    "national-district",
		domain.Spanish:    "distrito-nacional",
		domain.German:     "nationaldistrikt",
		domain.Italian:    "distretto-nazionale",
		domain.Dutch:      "nationaal-district",
		domain.Portuguese: "distrito-nacional",
	},
	"Santo Domingo Este": {
		domain.English:    "east-santo-domingo",
		domain.Spanish:    "santo-domingo-este",
		domain.German:     "santo-domingo-ost",
		domain.Italian:    "santo-domingo-est",
		domain.Dutch:      "santo-domingo-oost",
		domain.Portuguese: "santo-domingo-leste",
	},
}

// countryTranslations is the trailing country fragment of every slug.
var countryTranslations = map[domain.Language]string{
	domain.English:    "dominican-republic",
	domain.Spanish:    "republica-dominicana",
	domain.German:     "dominikanische-republik",
	domain.Italian:    "repubblica-dominicana",
	domain.Dutch:      "dominicaanse-republiek",
	domain.Portuguese: "republica-dominicana",
}

// fromPrepositions is the localized word for "from" joining name and location.
var fromPrepositions = map[domain.Language]string{
	domain.English:    "from",
	domain.Spanish:    "de",
	domain.German:     "aus",
	domain.Italian:    "da",
	domain.Dutch:      "uit",
	domain.Portuguese: "de",
}

func sameInAll(fragment string) map[domain.Language]string {
	m := make(map[domain.Language]string, len(domain.Languages))
	for _, l := range domain.Languages {
		m[l] = fragment
	}
	return m
}
