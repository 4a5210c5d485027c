package completion

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Classify parses backend output into candidates: one per line, blank lines
// dropped, anything after the first tab (fish's description) removed.
// Order is preserved.
func Classify(output string) []string {
	candidates := []string{} // Initialize as empty slice, not nil

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxOutputSize)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		value, _, _ := strings.Cut(line, "\t")
		if value == "" {
			continue
		}

		candidates = append(candidates, value)
	}

	return candidates
}

// LooksLikeFiles reports whether the first candidate names an existing path.
// Relative candidates are resolved against dir and a leading ~ is expanded.
func LooksLikeFiles(candidates []string, dir string) bool {
	if len(candidates) == 0 {
		return false
	}
	return pathExists(candidates[0], dir)
}

func pathExists(candidate, dir string) bool {
	path := expandHome(strings.TrimSpace(candidate))
	if path == "" {
		return false
	}
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	_, err := os.Stat(path)
	return err == nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func newBackendResult(source string, candidates []string, dir string) BackendResult {
	return BackendResult{
		Source:         source,
		Candidates:     candidates,
		LooksLikeFiles: LooksLikeFiles(candidates, dir),
	}
}
