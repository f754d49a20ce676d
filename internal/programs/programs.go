// Package programs embeds the sample Brainfuck programs shipped with bf.
package programs

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed src/*.bf
var files embed.FS

// Get returns the source of a sample program by name, without extension.
func Get(name string) (string, bool) {
	data, err := files.ReadFile(path.Join("src", name+".bf"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Names returns the names of all sample programs.
func Names() []string {
	entries, err := files.ReadDir("src")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".bf"))
	}
	sort.Strings(names)
	return names
}
