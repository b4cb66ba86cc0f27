package configsource

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/kyrobbins/goconfig/internal/config"
)

// NewEnvSource builds a config.Source over the process environment. It
// delegates to viper's AutomaticEnv machinery — the same library the
// engine's own CLI bootstrap uses to fold environment variables into its
// own configuration — rather than a bare os.Getenv wrapper.
//
// Environment variable names are matched by uppercasing the dotted key
// and replacing '.' with '_', e.g. "persistence.db.username" looks up
// PERSISTENCE_DB_USERNAME.
func NewEnvSource(label string) config.Source {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return config.NewFuncSource(label, func(key string) (string, bool) {
		if !v.IsSet(key) {
			return "", false
		}
		return v.GetString(key), true
	})
}
