package domain

// Asset tradable cryptocurrency listed by the price provider.
type Asset struct {
	// ID provider-assigned identifier, e.g. "bitcoin".
	ID string `json:"id"`
	// Name display label.
	Name string `json:"name"`
}

// Catalog assets available for selection, priced in Fiat.
type Catalog struct {
	Fiat    FiatCode `json:"fiat"`
	Assets  []Asset  `json:"assets"`
	Default string   `json:"default"`
}

// NewCatalog builds a catalog nominating the first asset as default selection.
func NewCatalog(fiat FiatCode, assets []Asset) Catalog {
	c := Catalog{Fiat: fiat, Assets: assets}
	if len(assets) > 0 {
		c.Default = assets[0].ID
	}
	return c
}

// Contains reports whether an asset with the given id is listed.
func (c Catalog) Contains(id string) bool {
	for _, a := range c.Assets {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Find returns the asset with the given id.
func (c Catalog) Find(id string) (Asset, bool) {
	for _, a := range c.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// IsEmpty reports whether the catalog has no assets.
func (c Catalog) IsEmpty() bool {
	return len(c.Assets) == 0
}
