// FILE: lixenwraith/objconfig/discovery.go
package objconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic defaults file discovery
type FileDiscoveryOptions struct {
	// Base name of defaults file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// CLI flag to check (e.g., "--config")
	CLIFlag string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// FindDefaultsFile locates a defaults file: an explicit CLI flag wins, then
// the environment variable, then the first existing candidate in the search
// paths. Returns "" when nothing is found, which is not an error.
func FindDefaultsFile(opts FileDiscoveryOptions, args []string, env Env) string {
	if env == nil {
		env = OSEnv{}
	}

	if opts.CLIFlag != "" {
		for i, arg := range args {
			if arg == "--" {
				break
			}
			if arg == opts.CLIFlag && i+1 < len(args) {
				return args[i+1]
			}
			if path, ok := strings.CutPrefix(arg, opts.CLIFlag+"="); ok {
				return path
			}
		}
	}

	if opts.EnvVar != "" {
		if path, ok := env.LookupEnv(opts.EnvVar); ok && path != "" {
			return path
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(opts.Name, env)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// xdgConfigPaths returns XDG-compliant config search paths
func xdgConfigPaths(appName string, env Env) []string {
	var paths []string

	if xdgHome, ok := env.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home, ok := env.LookupEnv("HOME"); ok && home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs, ok := env.LookupEnv("XDG_CONFIG_DIRS"); ok && xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
