package models

// Chilean region/commune pairs as the remote service knows them. The
// backend does not validate the pairing, so the client has to.
var regionCommunes = map[string][]string{
	"Metropolitana": {"Santiago", "Las Condes", "Maipu"},
	"Valparaiso":    {"Valparaiso", "Viña del Mar", "Quillota"},
	"Araucania":     {"Temuco", "Pucon", "Villarica"},
}

func Regions() []string {
	return []string{"Metropolitana", "Valparaiso", "Araucania"}
}

func CommunesByRegion(region string) []string {
	return regionCommunes[region]
}

// ValidCommune reports whether commune belongs to the commune set of region.
func ValidCommune(region, commune string) bool {
	for _, c := range regionCommunes[region] {
		if c == commune {
			return true
		}
	}
	return false
}
