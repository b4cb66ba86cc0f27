package config

// Specific renders a parsed key keeping override contents but dropping the
// surrounding braces, e.g. "persistence.db.{username}" -> "persistence.db.username".
func Specific(p *Part) string {
	return p.Unwrap(true)
}

// Generic renders a parsed key dropping override parts entirely,
// e.g. "persistence.db.{username}" -> "persistence.db".
func Generic(p *Part) string {
	return p.Unwrap(false)
}
