package util

import (
	"os"
	"sort"
	"strings"
)

// EnvList renders an environment map as sorted key=value pairs.
func EnvList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}

// EnvMap parses key=value pairs. Later duplicates win; entries without '='
// are dropped.
func EnvMap(list []string) map[string]string {
	env := make(map[string]string, len(list))
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// EnvSnapshot captures the current process environment.
func EnvSnapshot() map[string]string {
	return EnvMap(os.Environ())
}
