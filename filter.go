package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/monochromegane/go-gitignore"
	log "github.com/sirupsen/logrus"
)

// Visible applies the name-based rules: hidden entries, extension allow-list,
// regex and exclude globs. Directories are exempt from the extension and
// regex rules so that matching descendants can still be reached.
func (f *FilterConfig) Visible(name, ext string, isDir bool) bool {
	if !f.ShowHidden && isHidden(name) {
		return false
	}
	// Directories skip the file rules here; empty ones are pruned after the
	// build instead.
	if !isDir {
		if len(f.Extensions) > 0 {
			if _, ok := f.Extensions[ext]; !ok {
				return false
			}
		}
		if f.Regex != nil && !f.Regex.MatchString(name) {
			return false
		}
	}
	return !matchesAnyPattern(name, f.Exclude)
}

// Admit applies the rules that need the entry's path or size.
func (f *FilterConfig) Admit(path string, isDir bool, size int64) bool {
	if f.Ignore != nil && f.Ignore.Match(path, isDir) {
		return false
	}
	// Zero-size files always pass a size limit.
	if !isDir && f.MaxSize > 0 && size > 0 && uint64(size) > f.MaxSize {
		return false
	}
	return true
}

// narrowing reports whether file filters are active, in which case
// directories left without files are pruned from the tree.
func (f *FilterConfig) narrowing() bool {
	return len(f.Extensions) > 0 || f.Regex != nil
}

// isHidden checks if a name is hidden (starts with '.'), except '.' and '..'.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// extensionOf returns the lower-cased extension without its dot. Names whose
// only dot is the leading one (".bashrc") have no extension.
func extensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// compilePatterns compiles exclude globs, e.g. "node_modules" or "*.log".
func compilePatterns(patterns []string) ([]glob.Glob, error) {
	var compiled []glob.Glob
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, invalidInput("invalid exclude pattern", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// matchesAnyPattern checks if the given name matches any of the compiled globs.
func matchesAnyPattern(name string, patterns []glob.Glob) bool {
	for _, g := range patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// loadGitIgnore reads root/.gitignore. A missing file yields a nil matcher,
// an unparsable one is logged and ignored.
func loadGitIgnore(root string) gitignore.IgnoreMatcher {
	gitIgnorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); err != nil {
		log.Debugf("no .gitignore at %s", root)
		return nil
	}
	matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
	if err != nil {
		log.Warnf("could not parse .gitignore file %s: %v", gitIgnorePath, err)
		return nil
	}
	log.Debugf("using %s", gitIgnorePath)
	return matcher
}

func (f *FilterConfig) String() string {
	exts := make([]string, 0, len(f.Extensions))
	for ext := range f.Extensions {
		exts = append(exts, ext)
	}
	return fmt.Sprintf("hidden=%t extensions=%v regex=%v excludes=%d gitignore=%t max_size=%d",
		f.ShowHidden, exts, f.Regex, len(f.Exclude), f.Ignore != nil, f.MaxSize)
}
