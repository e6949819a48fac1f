package deployer

import (
	"os"
	"path/filepath"
	"strings"
)

// ReadDeployedVersion reads the deployed-version marker that Magento writes
// at pub/static/deployed_version.txt. It reports false when absent.
func ReadDeployedVersion(root string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "pub", "static", "deployed_version.txt"))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}
