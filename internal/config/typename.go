package config

// TypeNames maps a coercion's Go result type to the name reported in
// coercion-failure messages. The original implementation surfaces
// source-language canonical names (e.g. "java.lang.Boolean"); this table
// replicates those literal tokens for behavioural parity and is exported
// so a caller can override it with its own naming scheme.
var TypeNames = map[string]string{
	"bool":           "java.lang.Boolean",
	"int":            "java.lang.Integer",
	"int64":          "java.lang.Long",
	"float32":        "java.lang.Float",
	"float64":        "java.lang.Double",
	"semver.Version": "github.com/Masterminds/semver/v3.Version",
}

func typeName(key string) string {
	if name, ok := TypeNames[key]; ok {
		return name
	}
	return key
}
