package market

// IconResolver resolves the display icon of an asset by id.
type IconResolver interface {
	Icon(assetID string) string
}

// DefaultIcon is used for assets without a dedicated icon.
const DefaultIcon = "bitcoin"

// IconMap resolves icons from a fixed map, falling back to Fallback.
type IconMap struct {
	Icons    map[string]string
	Fallback string
}

// DefaultIcons returns the resolver used by the UI. Every asset shares one icon.
func DefaultIcons() IconMap {
	return IconMap{Fallback: DefaultIcon}
}

// Icon implements IconResolver.
func (m IconMap) Icon(assetID string) string {
	if icon, ok := m.Icons[assetID]; ok {
		return icon
	}
	if m.Fallback == "" {
		return DefaultIcon
	}
	return m.Fallback
}
