// File-backed secret resolution for configuration values.
package config

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// ReadSecret resolves a secret, prioritizing the file path if it names a
// readable file. The file contents win over the direct value; read failures
// fall back to the direct value. The same rule applies to every secret in the
// system so behavior stays uniform across services.
func ReadSecret(logger *zap.Logger, value, filePath string) string {
	if filePath == "" {
		return value
	}
	if _, err := os.Stat(filePath); err != nil {
		return value
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Error("Failed to read secret file, falling back to direct value",
			zap.String("path", filePath), zap.Error(err))
		return value
	}
	return strings.TrimSpace(string(data))
}
